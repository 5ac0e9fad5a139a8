//go:generate mockgen -source=contracts.go -destination=dispatch_mocks_test.go -package=dispatch_test

package dispatch

import (
	"context"

	"service-tracking/internal/domain"
	"service-tracking/internal/ports/deliverytx"
	"service-tracking/internal/pricing"
)

// DeliveryRepository stores deliveries. Writes that change status go through WithTx.
type DeliveryRepository interface {
	deliverytx.Runner
	CreateDelivery(ctx context.Context, d *domain.Delivery) error
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	GetDeliveryByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	ListLive(ctx context.Context) ([]*domain.Delivery, error)
	ListLiveByCourier(ctx context.Context, courierID string) ([]*domain.Delivery, error)
}

// CourierRepository is the courier availability directory.
type CourierRepository interface {
	GetCourier(ctx context.Context, id string) (*domain.Courier, error)
	UpsertCourier(ctx context.Context, c domain.Courier) error
	SetCourierStatus(ctx context.Context, id string, status domain.CourierStatus) error
}

// ZoneRepository persists the fee table.
type ZoneRepository interface {
	ListZones(ctx context.Context) ([]pricing.Zone, error)
	ReplaceZones(ctx context.Context, zones []pricing.Zone) error
}

// Tracker is the live side: which deliveries accept positions and who hears about
// status changes.
type Tracker interface {
	Activate(d *domain.Delivery)
	Deactivate(deliveryID, reason string)
	BroadcastStatus(d *domain.Delivery, ev domain.StatusEvent)
}

// Recorder persists audit events asynchronously.
type Recorder interface {
	RecordStatus(d *domain.Delivery, ev domain.StatusEvent)
}
