package orders

import (
	"context"
	"errors"
	"fmt"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/logx"
)

const defaultCancelReason = "order canceled"

// Processor processes orders events
type Processor struct {
	delivery DeliveryPort
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor creates a new orders.Processor
func NewProcessor(deliverySvc DeliveryPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		delivery: deliverySvc,
		logger:   logger,
	}
	p.factory = newActionFactory(p.onCreated, p.onCanceled)
	return p
}

// Handle processes a single orders.Event. Unknown statuses are ignored.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onCreated(ctx context.Context, e Event) error {
	if e.Pickup == nil || e.Dropoff == nil {
		return fmt.Errorf("%w: order %s has no geocoded pickup or dropoff", apperr.ErrInvalid, e.OrderID)
	}
	d, created, err := p.delivery.CreateDelivery(ctx, domain.NewDelivery{
		OrderID:    e.OrderID,
		CustomerID: e.CustomerID,
		StoreID:    e.StoreID,
		Pickup:     *e.Pickup,
		Dropoff:    *e.Dropoff,
		QuotedFee:  e.QuotedFee,
	})
	if err != nil {
		return err
	}
	if !created {
		p.logger.Debug("order already has a delivery",
			logx.String("order_id", e.OrderID),
			logx.String("delivery_id", d.ID),
		)
	}
	return nil
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	reason := e.Reason
	if reason == "" {
		reason = defaultCancelReason
	}
	err := p.delivery.CancelByOrder(ctx, e.OrderID, reason)
	// после pickup отменить может только админ
	if errors.Is(err, lifecycle.ErrInvalidTransition) {
		p.logger.Warn("order cancel ignored",
			logx.String("order_id", e.OrderID),
			logx.Err(err),
		)
		return nil
	}
	return err
}
