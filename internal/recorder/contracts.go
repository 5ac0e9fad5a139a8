//go:generate mockgen -source=contracts.go -destination=recorder_mocks_test.go -package=recorder_test

package recorder

import (
	"context"

	"service-tracking/internal/domain"
)

// Store persists the audit trail and breadcrumbs.
type Store interface {
	AppendStatusEvent(ctx context.Context, ev domain.StatusEvent) error
	AppendBreadcrumb(ctx context.Context, s domain.LocationSample) error
}

// StatusPublisher forwards applied transitions to downstream consumers.
type StatusPublisher interface {
	PublishStatus(ctx context.Context, d *domain.Delivery, ev domain.StatusEvent) error
}

// Observer counts what the recorder did.
type Observer interface {
	Written(kind string)
	Failed(kind string)
	Dropped(kind string)
	QueueLength(n int)
}

type nopObserver struct{}

func (nopObserver) Written(string)  {}
func (nopObserver) Failed(string)   {}
func (nopObserver) Dropped(string)  {}
func (nopObserver) QueueLength(int) {}
