package domain

import (
	"time"

	"service-tracking/internal/geo"
)

// LocationSample is one courier position observation.
type LocationSample struct {
	DeliveryID string
	CourierID  string
	Position   geo.Point
	// Heading is in degrees clockwise from north.
	Heading    *float64
	CapturedAt time.Time
	ReceivedAt time.Time
}

// StatusEvent records one applied lifecycle transition.
type StatusEvent struct {
	ID          string
	DeliveryID  string
	From        DeliveryStatus
	To          DeliveryStatus
	ActorID     string
	ActorRole   Role
	Description string
	// Override is set when an admin forced an exceptional transition.
	Override bool
	At       time.Time
}
