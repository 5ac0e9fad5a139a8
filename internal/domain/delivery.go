package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"service-tracking/internal/geo"
)

// DeliveryStatus is a state of the delivery lifecycle.
type DeliveryStatus string

// Delivery lifecycle states.
const (
	StatusPending         DeliveryStatus = "pending"
	StatusAssigned        DeliveryStatus = "assigned"
	StatusEnRoutePickup   DeliveryStatus = "en_route_pickup"
	StatusPickedUp        DeliveryStatus = "picked_up"
	StatusEnRouteDelivery DeliveryStatus = "en_route_delivery"
	StatusDelivered       DeliveryStatus = "delivered"
	StatusCancelled       DeliveryStatus = "cancelled"
)

var allStatuses = [...]DeliveryStatus{
	StatusPending, StatusAssigned, StatusEnRoutePickup, StatusPickedUp,
	StatusEnRouteDelivery, StatusDelivered, StatusCancelled,
}

// AllStatuses lists every lifecycle state in lifecycle order.
func AllStatuses() []DeliveryStatus {
	out := make([]DeliveryStatus, len(allStatuses))
	copy(out, allStatuses[:])
	return out
}

// Valid reports whether s is a known status.
func (s DeliveryStatus) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Live reports whether a courier is expected to publish positions in this state.
func (s DeliveryStatus) Live() bool {
	switch s {
	case StatusAssigned, StatusEnRoutePickup, StatusPickedUp, StatusEnRouteDelivery:
		return true
	default:
		return false
	}
}

// Delivery is one courier-fulfilled leg of an order.
type Delivery struct {
	ID         string
	OrderID    string
	CustomerID string
	StoreID    string
	CourierID  string

	Pickup  geo.Point
	Dropoff geo.Point

	Status     DeliveryStatus
	AgreedFee  decimal.NullDecimal
	QuotedFee  decimal.NullDecimal
	ZoneName   string
	DistanceKm float64

	CreatedAt         time.Time
	AssignedAt        *time.Time
	EnRoutePickupAt   *time.Time
	PickedUpAt        *time.Time
	EnRouteDeliveryAt *time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	CancelReason      string

	// Version increments on every saved change.
	Version int64
}

// Clone returns a deep copy so callers can mutate it without touching shared state.
func (d *Delivery) Clone() *Delivery {
	if d == nil {
		return nil
	}
	cp := *d
	cp.AssignedAt = cloneTime(d.AssignedAt)
	cp.EnRoutePickupAt = cloneTime(d.EnRoutePickupAt)
	cp.PickedUpAt = cloneTime(d.PickedUpAt)
	cp.EnRouteDeliveryAt = cloneTime(d.EnRouteDeliveryAt)
	cp.DeliveredAt = cloneTime(d.DeliveredAt)
	cp.CancelledAt = cloneTime(d.CancelledAt)
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// NewDelivery carries what the order collaborator knows at delivery creation.
type NewDelivery struct {
	OrderID    string
	CustomerID string
	StoreID    string
	Pickup     geo.Point
	Dropoff    geo.Point
	QuotedFee  decimal.NullDecimal
}
