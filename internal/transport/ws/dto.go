package ws

import (
	"time"

	"service-tracking/internal/domain"
	"service-tracking/internal/tracking"
)

// Client message types.
const (
	TypeAuth        = "auth"
	TypeSubscribe   = "subscribe_tracking"
	TypeUnsubscribe = "unsubscribe_tracking"
	TypeLocation    = "location_update"
	TypeStatus      = "status_update"
	TypePing        = "ping"
)

// Server-only message types.
const (
	TypeAuthOK = "auth_ok"
	TypePong   = "pong"
	TypeAck    = "ack"
	TypeError  = "error"
)

// Inbound is any client message; fields irrelevant to Type stay empty.
type Inbound struct {
	Type          string     `json:"type"`
	RequestID     string     `json:"requestId,omitempty"`
	Token         string     `json:"token,omitempty"`
	DeliveryID    string     `json:"deliveryId,omitempty"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	Heading       *float64   `json:"heading,omitempty"`
	CapturedAt    *time.Time `json:"capturedAt,omitempty"`
	Status        string     `json:"status,omitempty"`
	Description   string     `json:"description,omitempty"`
	AdminOverride bool       `json:"adminOverride,omitempty"`
}

// Position is a courier position on the wire.
type Position struct {
	CourierID  string    `json:"courierId"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Heading    *float64  `json:"heading,omitempty"`
	CapturedAt time.Time `json:"capturedAt"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// AuthOK confirms the connection.
type AuthOK struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Subscribed carries the snapshot a new subscriber starts from.
type Subscribed struct {
	Type            string    `json:"type"`
	DeliveryID      string    `json:"deliveryId"`
	Status          string    `json:"status"`
	CourierID       string    `json:"courierId,omitempty"`
	Position        *Position `json:"position,omitempty"`
	PublisherOnline bool      `json:"publisherOnline"`
}

// LocationUpdate is a fanned-out courier position.
type LocationUpdate struct {
	Type       string `json:"type"`
	DeliveryID string `json:"deliveryId"`
	Position
}

// StatusUpdate is a fanned-out lifecycle transition.
type StatusUpdate struct {
	Type        string    `json:"type"`
	DeliveryID  string    `json:"deliveryId"`
	From        string    `json:"from"`
	Status      string    `json:"status"`
	At          time.Time `json:"at"`
	Description string    `json:"description,omitempty"`
	Override    bool      `json:"override,omitempty"`
}

// PublisherStatus tells whether the courier is currently connected.
type PublisherStatus struct {
	Type       string `json:"type"`
	DeliveryID string `json:"deliveryId"`
	Online     bool   `json:"online"`
}

// TrackingEnded closes a session from the server side.
type TrackingEnded struct {
	Type       string `json:"type"`
	DeliveryID string `json:"deliveryId"`
	Reason     string `json:"reason"`
}

// Reply answers one client request.
type Reply struct {
	Type       string `json:"type"`
	RequestID  string `json:"requestId,omitempty"`
	DeliveryID string `json:"deliveryId,omitempty"`
	Status     string `json:"status,omitempty"`
	Changed    *bool  `json:"changed,omitempty"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message,omitempty"`
}

func toPosition(s *domain.LocationSample) *Position {
	if s == nil {
		return nil
	}
	return &Position{
		CourierID:  s.CourierID,
		Latitude:   s.Position.Lat,
		Longitude:  s.Position.Lon,
		Heading:    s.Heading,
		CapturedAt: s.CapturedAt,
		ReceivedAt: s.ReceivedAt,
	}
}

// toWire converts a hub message into its JSON shape.
func toWire(m tracking.Message) any {
	switch m.Type {
	case tracking.MsgSubscribed:
		out := Subscribed{Type: string(m.Type), DeliveryID: m.DeliveryID}
		if s := m.Snapshot; s != nil {
			out.Status = string(s.Status)
			out.CourierID = s.CourierID
			out.Position = toPosition(s.Position)
			out.PublisherOnline = s.PublisherOnline
		}
		return out
	case tracking.MsgLocation:
		out := LocationUpdate{Type: string(m.Type), DeliveryID: m.DeliveryID}
		if p := toPosition(m.Location); p != nil {
			out.Position = *p
		}
		return out
	case tracking.MsgStatus:
		out := StatusUpdate{Type: string(m.Type), DeliveryID: m.DeliveryID}
		if ev := m.Status; ev != nil {
			out.From = string(ev.From)
			out.Status = string(ev.To)
			out.At = ev.At
			out.Description = ev.Description
			out.Override = ev.Override
		}
		return out
	case tracking.MsgPublisherStatus:
		return PublisherStatus{Type: string(m.Type), DeliveryID: m.DeliveryID, Online: m.Online}
	case tracking.MsgTrackingEnded:
		return TrackingEnded{Type: string(m.Type), DeliveryID: m.DeliveryID, Reason: m.Reason}
	default:
		return Reply{Type: string(m.Type), DeliveryID: m.DeliveryID}
	}
}
