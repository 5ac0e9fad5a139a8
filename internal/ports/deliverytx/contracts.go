package deliverytx

import (
	"context"

	"service-tracking/internal/domain"
)

// Repository is the set of operations that run inside one transaction.
// Rows read with ForUpdate stay locked until the transaction ends.
type Repository interface {
	GetDeliveryForUpdate(ctx context.Context, id string) (*domain.Delivery, error)
	GetCourierForUpdate(ctx context.Context, id string) (*domain.Courier, error)
	SaveDelivery(ctx context.Context, d *domain.Delivery) error
	SetCourierStatus(ctx context.Context, id string, status domain.CourierStatus) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
