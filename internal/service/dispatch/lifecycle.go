package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/logx"
	"service-tracking/internal/ports/deliverytx"
)

// Assign hands a pending delivery to an available courier. The fee is computed from
// the stored points, never from client input, and is written together with the
// courier and the pending->assigned transition; the courier becomes busy in the same
// transaction.
func (c *Coordinator) Assign(ctx context.Context, deliveryID, courierID string, actor domain.Identity) (*domain.Delivery, error) {
	courierID = strings.TrimSpace(courierID)
	if deliveryID == "" || courierID == "" {
		return nil, fmt.Errorf("%w: delivery id and courier id are required", apperr.ErrInvalid)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var (
		d  *domain.Delivery
		ev domain.StatusEvent
	)
	err := c.retrier.Do(ctx, "assign", func(ctx context.Context) error {
		return c.deliveries.WithTx(ctx, func(tx deliverytx.Repository) error {
			cur, err := tx.GetDeliveryForUpdate(ctx, deliveryID)
			if err != nil {
				return err
			}
			if cur.Status != domain.StatusPending {
				return fmt.Errorf("%w: delivery %s is %s", ErrAlreadyAssigned, cur.ID, cur.Status)
			}

			courier, err := tx.GetCourierForUpdate(ctx, courierID)
			if err != nil {
				return err
			}
			if courier.Status != domain.CourierAvailable {
				return fmt.Errorf("%w: courier %s is %s", ErrCourierUnavailable, courier.ID, courier.Status)
			}

			quote, err := c.engine.QuotePoints(cur.Pickup, cur.Dropoff)
			if err != nil {
				return err
			}
			cur.CourierID = courier.ID
			cur.AgreedFee = decimal.NewNullDecimal(quote.Fee)
			cur.ZoneName = quote.Zone.Name
			cur.DistanceKm = quote.DistanceKm

			e, _, err := c.machine.Apply(cur, lifecycle.Request{To: domain.StatusAssigned, Actor: actor})
			if err != nil {
				return err
			}
			if err := tx.SaveDelivery(ctx, cur); err != nil {
				return err
			}
			if err := tx.SetCourierStatus(ctx, courier.ID, domain.CourierBusy); err != nil {
				return err
			}
			d, ev = cur, e
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if d.QuotedFee.Valid && !d.QuotedFee.Decimal.Equal(d.AgreedFee.Decimal) {
		c.logger.Warn("quoted fee differs from agreed fee",
			logx.String("delivery_id", d.ID),
			logx.String("quoted_fee", d.QuotedFee.Decimal.StringFixed(2)),
			logx.String("agreed_fee", d.AgreedFee.Decimal.StringFixed(2)),
		)
	}
	c.logger.Info("courier assigned",
		logx.String("event", "courier_assigned"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("courier_id", d.CourierID),
		logx.String("fee", d.AgreedFee.Decimal.StringFixed(2)),
		logx.String("zone", d.ZoneName),
	)

	c.recorder.RecordStatus(d, ev)
	c.StartSession(d)
	c.tracker.BroadcastStatus(d, ev)
	return d, nil
}

// Transition applies a status change, stores it, then fans it out. A duplicate of the
// transition that produced the current status returns changed=false and does nothing.
// Terminal statuses end the tracking session and free the courier.
// Assignment is not a plain status change; it goes through Assign only.
func (c *Coordinator) Transition(ctx context.Context, deliveryID string, req lifecycle.Request) (*domain.Delivery, bool, error) {
	if req.To == domain.StatusAssigned {
		return nil, false, fmt.Errorf("%w: assignment goes through assign, not a status change", lifecycle.ErrInvalidTransition)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var (
		d       *domain.Delivery
		ev      domain.StatusEvent
		changed bool
	)
	err := c.retrier.Do(ctx, "transition", func(ctx context.Context) error {
		return c.deliveries.WithTx(ctx, func(tx deliverytx.Repository) error {
			cur, err := tx.GetDeliveryForUpdate(ctx, deliveryID)
			if err != nil {
				return err
			}
			e, ok, err := c.machine.Apply(cur, req)
			if err != nil {
				return err
			}
			d, ev, changed = cur, e, ok
			if !ok {
				return nil
			}
			if err := tx.SaveDelivery(ctx, cur); err != nil {
				return err
			}
			if cur.Status.Terminal() && cur.CourierID != "" {
				return releaseCourier(ctx, tx, cur.CourierID)
			}
			return nil
		})
	})
	if err != nil {
		c.logger.Warn("transition refused",
			logx.String("delivery_id", deliveryID),
			logx.String("to", string(req.To)),
			logx.String("actor_id", req.Actor.UserID),
			logx.String("actor_role", string(req.Actor.Role)),
			logx.Err(err),
		)
		return nil, false, err
	}
	if !changed {
		return d, false, nil
	}

	c.logger.Info("delivery status changed",
		logx.String("event", "status_changed"),
		logx.String("delivery_id", d.ID),
		logx.String("from", string(ev.From)),
		logx.String("to", string(ev.To)),
		logx.String("actor_id", ev.ActorID),
		logx.Bool("override", ev.Override),
	)
	c.recorder.RecordStatus(d, ev)
	c.tracker.BroadcastStatus(d, ev)
	if d.Status.Terminal() {
		c.EndSession(d.ID, string(d.Status))
	}
	return d, true, nil
}

// releaseCourier frees a busy courier. Paused couriers stay paused.
func releaseCourier(ctx context.Context, tx deliverytx.Repository, courierID string) error {
	courier, err := tx.GetCourierForUpdate(ctx, courierID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if courier.Status != domain.CourierBusy {
		return nil
	}
	return tx.SetCourierStatus(ctx, courierID, domain.CourierAvailable)
}

// StartSession opens the delivery for courier publishing.
func (c *Coordinator) StartSession(d *domain.Delivery) {
	c.tracker.Activate(d)
}

// EndSession closes tracking for a delivery; subscribers get tracking_ended.
func (c *Coordinator) EndSession(deliveryID, reason string) {
	c.tracker.Deactivate(deliveryID, reason)
}
