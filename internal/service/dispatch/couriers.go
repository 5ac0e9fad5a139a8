package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/logx"
)

// UpsertCourier creates or updates a courier in the availability directory. An empty
// status means available.
func (c *Coordinator) UpsertCourier(ctx context.Context, courier domain.Courier) (domain.Courier, error) {
	courier.ID = strings.TrimSpace(courier.ID)
	courier.Name = strings.TrimSpace(courier.Name)
	if courier.ID == "" {
		return domain.Courier{}, fmt.Errorf("%w: courier id is required", apperr.ErrInvalid)
	}
	if courier.Status == "" {
		courier.Status = domain.CourierAvailable
	}
	if !courier.Status.Valid() {
		return domain.Courier{}, fmt.Errorf("%w: unknown courier status %q", apperr.ErrInvalid, courier.Status)
	}
	courier.UpdatedAt = c.now()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	err := c.retrier.Do(ctx, "upsert_courier", func(ctx context.Context) error {
		return c.couriers.UpsertCourier(ctx, courier)
	})
	if err != nil {
		return domain.Courier{}, err
	}
	return courier, nil
}

// DeactivateCourier pauses a courier and force-cancels every delivery they still hold.
// It returns the cancelled delivery ids.
func (c *Coordinator) DeactivateCourier(ctx context.Context, courierID string, actor domain.Identity, reason string) ([]string, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins deactivate couriers", apperr.ErrUnauthorized)
	}
	if strings.TrimSpace(reason) == "" {
		reason = "courier deactivated"
	}

	opCtx, cancel := c.withTimeout(ctx)
	err := c.retrier.Do(opCtx, "pause_courier", func(ctx context.Context) error {
		return c.couriers.SetCourierStatus(ctx, courierID, domain.CourierPaused)
	})
	if err != nil {
		cancel()
		return nil, err
	}
	live, err := c.deliveries.ListLiveByCourier(opCtx, courierID)
	cancel()
	if err != nil {
		return nil, err
	}

	var cancelled []string
	for _, d := range live {
		_, changed, err := c.Transition(ctx, d.ID, lifecycle.Request{
			To:            domain.StatusCancelled,
			Actor:         actor,
			Description:   reason,
			AdminOverride: true,
		})
		if err != nil {
			return cancelled, fmt.Errorf("cancel delivery %s: %w", d.ID, err)
		}
		if changed {
			cancelled = append(cancelled, d.ID)
		}
	}

	c.logger.Warn("courier deactivated",
		logx.String("event", "courier_deactivated"),
		logx.String("courier_id", courierID),
		logx.String("actor_id", actor.UserID),
		logx.Int("cancelled", len(cancelled)),
	)
	return cancelled, nil
}

// CancelByOrder cancels the delivery of a cancelled order on behalf of the system.
// Unknown orders and finished deliveries are ignored. Orders cancelled after pickup
// are refused with the lifecycle error; an admin has to force those.
func (c *Coordinator) CancelByOrder(ctx context.Context, orderID, reason string) error {
	getCtx, cancel := c.withTimeout(ctx)
	d, err := c.deliveries.GetDeliveryByOrderID(getCtx, strings.TrimSpace(orderID))
	cancel()
	if errors.Is(err, apperr.ErrNotFound) {
		c.logger.Info("no delivery for cancelled order", logx.String("order_id", orderID))
		return nil
	}
	if err != nil {
		return err
	}
	if d.Status.Terminal() {
		return nil
	}

	_, _, err = c.Transition(ctx, d.ID, lifecycle.Request{
		To:          domain.StatusCancelled,
		Actor:       domain.System,
		Description: reason,
	})
	return err
}
