//go:generate mockgen -source=contracts.go -destination=tracking_mocks_test.go -package=tracking_test

package tracking

import (
	"context"

	"service-tracking/internal/domain"
	"service-tracking/internal/lifecycle"
)

// Authenticator resolves connection credentials into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials string) (domain.Identity, error)
}

// DeliveryReader loads deliveries for subscription checks.
type DeliveryReader interface {
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
}

// StatusApplier runs a status transition end to end: validate, persist, fan out.
type StatusApplier interface {
	Transition(ctx context.Context, deliveryID string, req lifecycle.Request) (*domain.Delivery, bool, error)
}

// SampleSink receives accepted samples for durable breadcrumbs. It must not block.
type SampleSink interface {
	RecordSample(s domain.LocationSample)
}

// Observer receives hub events for metrics.
type Observer interface {
	ConnectionOpened()
	ConnectionClosed(reason string)
	SessionsChanged(delta int)
	Sample(outcome string)
	FanoutDropped()
	Evicted()
}

type nopObserver struct{}

func (nopObserver) ConnectionOpened()       {}
func (nopObserver) ConnectionClosed(string) {}
func (nopObserver) SessionsChanged(int)     {}
func (nopObserver) Sample(string)           {}
func (nopObserver) FanoutDropped()          {}
func (nopObserver) Evicted()                {}

type nopSink struct{}

func (nopSink) RecordSample(domain.LocationSample) {}
