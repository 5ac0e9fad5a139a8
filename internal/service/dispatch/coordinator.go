// Package dispatch creates deliveries, assigns them to couriers and drives their
// lifecycle, keeping the durable row and the live tracking hub in step.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/geo"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/logx"
	"service-tracking/internal/pricing"
	"service-tracking/internal/retry"
)

// Deps groups what a Coordinator talks to.
type Deps struct {
	Deliveries DeliveryRepository
	Couriers   CourierRepository
	Zones      ZoneRepository
	Engine     *pricing.Engine
	Tracker    Tracker
	Recorder   Recorder
	Retrier    *retry.Retrier
	Logger     logx.Logger
}

// Coordinator orchestrates deliveries.
type Coordinator struct {
	deliveries DeliveryRepository
	couriers   CourierRepository
	zones      ZoneRepository
	engine     *pricing.Engine
	tracker    Tracker
	recorder   Recorder
	retrier    *retry.Retrier
	machine    *lifecycle.Machine
	logger     logx.Logger

	// zonesMu keeps the stored and the installed zone tables the same under concurrent edits.
	zonesMu sync.Mutex

	operationTimeout time.Duration
	now              func() time.Time
	newID            func() string
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithClock replaces the wall clock used for creation and lifecycle stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
		c.machine = lifecycle.New(now)
	}
}

// WithTimeout bounds every repository operation.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.operationTimeout = d
		}
	}
}

// New builds a Coordinator.
func New(deps Deps, opts ...Option) *Coordinator {
	if deps.Logger == nil {
		deps.Logger = logx.Nop()
	}
	if deps.Retrier == nil {
		deps.Retrier = retry.New(retry.Config{MaxAttempts: 1}, deps.Logger, nil)
	}
	c := &Coordinator{
		deliveries:       deps.Deliveries,
		couriers:         deps.Couriers,
		zones:            deps.Zones,
		engine:           deps.Engine,
		tracker:          deps.Tracker,
		recorder:         deps.Recorder,
		retrier:          deps.Retrier,
		machine:          lifecycle.New(nil),
		logger:           deps.Logger,
		operationTimeout: 3 * time.Second,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.operationTimeout)
}

// CreateDelivery registers a pending delivery for an order. It is idempotent per
// order: the existing delivery is returned with created=false. Points must be valid
// and within delivery range.
func (c *Coordinator) CreateDelivery(ctx context.Context, nd domain.NewDelivery) (d *domain.Delivery, created bool, err error) {
	nd.OrderID = strings.TrimSpace(nd.OrderID)
	nd.CustomerID = strings.TrimSpace(nd.CustomerID)
	nd.StoreID = strings.TrimSpace(nd.StoreID)
	if nd.OrderID == "" || nd.CustomerID == "" {
		return nil, false, fmt.Errorf("%w: order id and customer id are required", apperr.ErrInvalid)
	}
	quote, err := c.engine.QuotePoints(nd.Pickup, nd.Dropoff)
	if err != nil {
		return nil, false, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	existing, err := c.deliveries.GetDeliveryByOrderID(ctx, nd.OrderID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, false, err
	}

	d = &domain.Delivery{
		ID:         c.newID(),
		OrderID:    nd.OrderID,
		CustomerID: nd.CustomerID,
		StoreID:    nd.StoreID,
		Pickup:     nd.Pickup,
		Dropoff:    nd.Dropoff,
		Status:     domain.StatusPending,
		QuotedFee:  nd.QuotedFee,
		ZoneName:   quote.Zone.Name,
		DistanceKm: quote.DistanceKm,
		CreatedAt:  c.now(),
		Version:    1,
	}
	err = c.retrier.Do(ctx, "create_delivery", func(ctx context.Context) error {
		return c.deliveries.CreateDelivery(ctx, d)
	})
	if errors.Is(err, apperr.ErrConflict) {
		// заказ уже создан параллельно
		existing, getErr := c.deliveries.GetDeliveryByOrderID(ctx, nd.OrderID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	c.logger.Info("delivery created",
		logx.String("event", "delivery_created"),
		logx.String("delivery_id", d.ID),
		logx.String("order_id", d.OrderID),
		logx.String("zone", d.ZoneName),
		logx.Float64("distance_km", d.DistanceKm),
	)
	return d, true, nil
}

// Get returns a delivery by id.
func (c *Coordinator) Get(ctx context.Context, id string) (*domain.Delivery, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.deliveries.GetDelivery(ctx, id)
}

// GetForViewer returns a delivery only if viewer may watch it.
func (c *Coordinator) GetForViewer(ctx context.Context, id string, viewer domain.Identity) (*domain.Delivery, error) {
	d, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanView(d) {
		return nil, fmt.Errorf("%w: %s may not view delivery %s", apperr.ErrUnauthorized, viewer.UserID, id)
	}
	return d, nil
}

// Quote prices the straight-line distance between two points with the current table.
func (c *Coordinator) Quote(pickup, dropoff geo.Point) (pricing.Quote, error) {
	return c.engine.QuotePoints(pickup, dropoff)
}

// QuoteDistance prices a distance with the current table.
func (c *Coordinator) QuoteDistance(km float64) (pricing.Quote, error) {
	return c.engine.FeeFor(km)
}
