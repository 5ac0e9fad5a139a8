//go:generate mockgen -source=contracts.go -destination=handlers_mocks_test.go -package=handlers_test

package handlers

import (
	"context"

	"service-tracking/internal/domain"
	"service-tracking/internal/geo"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/pricing"
)

type feeUsecase interface {
	Quote(pickup, dropoff geo.Point) (pricing.Quote, error)
	QuoteDistance(km float64) (pricing.Quote, error)
	Zones() []pricing.Zone
	ReplaceZones(ctx context.Context, zones []pricing.Zone, actor domain.Identity) error
}

type deliveryUsecase interface {
	CreateDelivery(ctx context.Context, nd domain.NewDelivery) (*domain.Delivery, bool, error)
	GetForViewer(ctx context.Context, id string, viewer domain.Identity) (*domain.Delivery, error)
	Assign(ctx context.Context, deliveryID, courierID string, actor domain.Identity) (*domain.Delivery, error)
	Transition(ctx context.Context, deliveryID string, req lifecycle.Request) (*domain.Delivery, bool, error)
}

type courierUsecase interface {
	UpsertCourier(ctx context.Context, c domain.Courier) (domain.Courier, error)
	DeactivateCourier(ctx context.Context, courierID string, actor domain.Identity, reason string) ([]string, error)
}
