package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"service-tracking/internal/domain"
	"service-tracking/internal/geo"
	"service-tracking/internal/service/orders"
)

// PointDTO is a geocoded address.
type PointDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EventDTO is an order event as the order service publishes it.
type EventDTO struct {
	OrderID    string              `json:"order_id"`
	Status     string              `json:"status"`
	CustomerID string              `json:"customer_id,omitempty"`
	StoreID    string              `json:"store_id,omitempty"`
	Pickup     *PointDTO           `json:"pickup,omitempty"`
	Dropoff    *PointDTO           `json:"dropoff,omitempty"`
	QuotedFee  decimal.NullDecimal `json:"quoted_fee"`
	Reason     string              `json:"reason,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	ev := orders.Event{
		OrderID:    strings.TrimSpace(dto.OrderID),
		Status:     strings.TrimSpace(dto.Status),
		CustomerID: strings.TrimSpace(dto.CustomerID),
		StoreID:    strings.TrimSpace(dto.StoreID),
		QuotedFee:  dto.QuotedFee,
		Reason:     strings.TrimSpace(dto.Reason),
		CreatedAt:  dto.CreatedAt,
	}
	if dto.Pickup != nil {
		ev.Pickup = &geo.Point{Lat: dto.Pickup.Lat, Lon: dto.Pickup.Lon}
	}
	if dto.Dropoff != nil {
		ev.Dropoff = &geo.Point{Lat: dto.Dropoff.Lat, Lon: dto.Dropoff.Lon}
	}
	return ev
}

var errEmptyOrderID = errors.New("empty order_id")

func decode(value []byte) (orders.Event, error) {
	var dto EventDTO
	if err := json.Unmarshal(value, &dto); err != nil {
		return orders.Event{}, Permanent(fmt.Errorf("bad json: %w", err))
	}
	ev := ToDomain(dto)
	if ev.OrderID == "" {
		return orders.Event{}, Permanent(errEmptyOrderID)
	}
	return ev, nil
}

// StatusChangedDTO is published for every applied delivery transition.
type StatusChangedDTO struct {
	EventID     string    `json:"event_id"`
	DeliveryID  string    `json:"delivery_id"`
	OrderID     string    `json:"order_id"`
	CustomerID  string    `json:"customer_id,omitempty"`
	StoreID     string    `json:"store_id,omitempty"`
	CourierID   string    `json:"courier_id,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ActorID     string    `json:"actor_id"`
	ActorRole   string    `json:"actor_role"`
	Description string    `json:"description,omitempty"`
	Override    bool      `json:"override,omitempty"`
	At          time.Time `json:"at"`
	Version     int64     `json:"version"`
}

// FromStatusEvent builds the outgoing message for ev applied to d.
func FromStatusEvent(d *domain.Delivery, ev domain.StatusEvent) StatusChangedDTO {
	return StatusChangedDTO{
		EventID:     ev.ID,
		DeliveryID:  ev.DeliveryID,
		OrderID:     d.OrderID,
		CustomerID:  d.CustomerID,
		StoreID:     d.StoreID,
		CourierID:   d.CourierID,
		From:        string(ev.From),
		To:          string(ev.To),
		ActorID:     ev.ActorID,
		ActorRole:   string(ev.ActorRole),
		Description: ev.Description,
		Override:    ev.Override,
		At:          ev.At.UTC(),
		Version:     d.Version,
	}
}
