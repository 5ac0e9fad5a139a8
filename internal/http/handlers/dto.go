package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"service-tracking/internal/domain"
	"service-tracking/internal/geo"
	"service-tracking/internal/pricing"
)

type quoteRequest struct {
	Pickup  geo.Point `json:"pickup"`
	Dropoff geo.Point `json:"dropoff"`
}

type quoteResponse struct {
	Fee        string  `json:"fee"`
	Zone       string  `json:"zone"`
	DistanceKm float64 `json:"distanceKm"`
}

type zonesRequest struct {
	Zones []pricing.Zone `json:"zones"`
}

type zonesResponse struct {
	Zones []pricing.Zone `json:"zones"`
}

type createDeliveryRequest struct {
	OrderID    string           `json:"orderId"`
	CustomerID string           `json:"customerId"`
	StoreID    string           `json:"storeId"`
	Pickup     geo.Point        `json:"pickup"`
	Dropoff    geo.Point        `json:"dropoff"`
	QuotedFee  *decimal.Decimal `json:"quotedFee,omitempty"`
}

type assignRequest struct {
	CourierID string `json:"courierId"`
}

type statusRequest struct {
	Status        domain.DeliveryStatus `json:"status"`
	Description   string                `json:"description,omitempty"`
	AdminOverride bool                  `json:"adminOverride,omitempty"`
}

type statusResponse struct {
	Delivery deliveryDTO `json:"delivery"`
	Changed  bool        `json:"changed"`
}

type deliveryDTO struct {
	ID           string                `json:"id"`
	OrderID      string                `json:"orderId"`
	CustomerID   string                `json:"customerId"`
	StoreID      string                `json:"storeId,omitempty"`
	CourierID    string                `json:"courierId,omitempty"`
	Pickup       geo.Point             `json:"pickup"`
	Dropoff      geo.Point             `json:"dropoff"`
	Status       domain.DeliveryStatus `json:"status"`
	Fee          *string               `json:"fee,omitempty"`
	QuotedFee    *string               `json:"quotedFee,omitempty"`
	Zone         string                `json:"zone,omitempty"`
	DistanceKm   float64               `json:"distanceKm"`
	CreatedAt    time.Time             `json:"createdAt"`
	AssignedAt   *time.Time            `json:"assignedAt,omitempty"`
	PickedUpAt   *time.Time            `json:"pickedUpAt,omitempty"`
	DeliveredAt  *time.Time            `json:"deliveredAt,omitempty"`
	CancelledAt  *time.Time            `json:"cancelledAt,omitempty"`
	CancelReason string                `json:"cancelReason,omitempty"`
	Version      int64                 `json:"version"`
}

type courierRequest struct {
	Name   string               `json:"name"`
	Status domain.CourierStatus `json:"status,omitempty"`
}

type courierDTO struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Status    domain.CourierStatus `json:"status"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type deactivateRequest struct {
	Reason string `json:"reason,omitempty"`
}

type deactivateResponse struct {
	CourierID string   `json:"courierId"`
	Cancelled []string `json:"cancelled"`
}

func quoteToResponse(q pricing.Quote) quoteResponse {
	return quoteResponse{
		Fee:        q.Fee.StringFixed(pricing.MinorDigits),
		Zone:       q.Zone.Name,
		DistanceKm: q.DistanceKm,
	}
}

func money(v decimal.NullDecimal) *string {
	if !v.Valid {
		return nil
	}
	s := v.Decimal.StringFixed(pricing.MinorDigits)
	return &s
}

func deliveryToResponse(d *domain.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:           d.ID,
		OrderID:      d.OrderID,
		CustomerID:   d.CustomerID,
		StoreID:      d.StoreID,
		CourierID:    d.CourierID,
		Pickup:       d.Pickup,
		Dropoff:      d.Dropoff,
		Status:       d.Status,
		Fee:          money(d.AgreedFee),
		QuotedFee:    money(d.QuotedFee),
		Zone:         d.ZoneName,
		DistanceKm:   d.DistanceKm,
		CreatedAt:    d.CreatedAt,
		AssignedAt:   d.AssignedAt,
		PickedUpAt:   d.PickedUpAt,
		DeliveredAt:  d.DeliveredAt,
		CancelledAt:  d.CancelledAt,
		CancelReason: d.CancelReason,
		Version:      d.Version,
	}
}

func (r createDeliveryRequest) toModel() domain.NewDelivery {
	nd := domain.NewDelivery{
		OrderID:    r.OrderID,
		CustomerID: r.CustomerID,
		StoreID:    r.StoreID,
		Pickup:     r.Pickup,
		Dropoff:    r.Dropoff,
	}
	if r.QuotedFee != nil {
		nd.QuotedFee = decimal.NewNullDecimal(*r.QuotedFee)
	}
	return nd
}

func courierToResponse(c domain.Courier) courierDTO {
	return courierDTO{ID: c.ID, Name: c.Name, Status: c.Status, UpdatedAt: c.UpdatedAt}
}
