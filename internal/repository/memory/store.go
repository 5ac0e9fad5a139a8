// Package memory is an in-process store with the same contracts as the postgres one.
// Used with STORAGE_DRIVER=memory and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/ports/deliverytx"
	"service-tracking/internal/pricing"
)

// Store keeps everything in maps guarded by one mutex.
type Store struct {
	mu          sync.Mutex
	deliveries  map[string]*domain.Delivery
	byOrder     map[string]string
	couriers    map[string]domain.Courier
	events      map[string][]domain.StatusEvent
	eventIDs    map[string]struct{}
	breadcrumbs map[string][]domain.LocationSample
	zones       []pricing.Zone

	// fail, when set, is returned by every write; used to simulate outages.
	fail error
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		deliveries:  make(map[string]*domain.Delivery),
		byOrder:     make(map[string]string),
		couriers:    make(map[string]domain.Courier),
		events:      make(map[string][]domain.StatusEvent),
		eventIDs:    make(map[string]struct{}),
		breadcrumbs: make(map[string][]domain.LocationSample),
	}
}

// FailWrites makes every following write return err until called with nil.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// WithTx runs fn with exclusive access. Writes are staged and only become visible
// when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txRepo{
		s:          s,
		deliveries: make(map[string]*domain.Delivery),
		couriers:   make(map[string]domain.Courier),
	}
	if err := fn(tx); err != nil {
		return err
	}
	if s.fail != nil {
		return s.fail
	}
	for id, d := range tx.deliveries {
		s.deliveries[id] = d
	}
	for id, c := range tx.couriers {
		s.couriers[id] = c
	}
	return nil
}

// CreateDelivery inserts a new delivery. A second delivery for the same order is a conflict.
func (s *Store) CreateDelivery(_ context.Context, d *domain.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if _, ok := s.byOrder[d.OrderID]; ok {
		return fmt.Errorf("insert delivery for order %q: %w", d.OrderID, apperr.ErrConflict)
	}
	if _, ok := s.deliveries[d.ID]; ok {
		return fmt.Errorf("insert delivery %s: %w", d.ID, apperr.ErrConflict)
	}
	s.deliveries[d.ID] = d.Clone()
	s.byOrder[d.OrderID] = d.ID
	return nil
}

// GetDelivery returns a copy of the delivery.
func (s *Store) GetDelivery(_ context.Context, id string) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getDelivery(id)
}

func (s *Store) getDelivery(id string) (*domain.Delivery, error) {
	d, ok := s.deliveries[id]
	if !ok {
		return nil, fmt.Errorf("get delivery %s: %w", id, apperr.ErrNotFound)
	}
	return d.Clone(), nil
}

// GetDeliveryByOrderID returns the delivery created for an order.
func (s *Store) GetDeliveryByOrderID(_ context.Context, orderID string) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byOrder[orderID]
	if !ok {
		return nil, fmt.Errorf("get delivery for order %q: %w", orderID, apperr.ErrNotFound)
	}
	return s.getDelivery(id)
}

// ListLive returns deliveries a courier is currently working on.
func (s *Store) ListLive(_ context.Context) ([]*domain.Delivery, error) {
	return s.list(func(d *domain.Delivery) bool { return d.Status.Live() }), nil
}

// ListLiveByCourier returns live deliveries assigned to courierID.
func (s *Store) ListLiveByCourier(_ context.Context, courierID string) ([]*domain.Delivery, error) {
	return s.list(func(d *domain.Delivery) bool { return d.Status.Live() && d.CourierID == courierID }), nil
}

func (s *Store) list(keep func(*domain.Delivery) bool) []*domain.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Delivery
	for _, d := range s.deliveries {
		if keep(d) {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetCourier returns a courier by id.
func (s *Store) GetCourier(_ context.Context, id string) (*domain.Courier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.couriers[id]
	if !ok {
		return nil, fmt.Errorf("get courier %s: %w", id, apperr.ErrNotFound)
	}
	return &c, nil
}

// UpsertCourier creates the courier or overwrites it.
func (s *Store) UpsertCourier(_ context.Context, c domain.Courier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.couriers[c.ID] = c
	return nil
}

// SetCourierStatus changes the availability of an existing courier.
func (s *Store) SetCourierStatus(_ context.Context, id string, status domain.CourierStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	c, ok := s.couriers[id]
	if !ok {
		return fmt.Errorf("courier %s: %w", id, apperr.ErrNotFound)
	}
	c.Status = status
	s.couriers[id] = c
	return nil
}

// AppendStatusEvent appends to the audit trail. Replaying the same event id is a no-op.
func (s *Store) AppendStatusEvent(_ context.Context, ev domain.StatusEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if _, dup := s.eventIDs[ev.ID]; dup {
		return nil
	}
	s.eventIDs[ev.ID] = struct{}{}
	s.events[ev.DeliveryID] = append(s.events[ev.DeliveryID], ev)
	return nil
}

// ListStatusEvents returns the audit trail of a delivery in append order.
func (s *Store) ListStatusEvents(_ context.Context, deliveryID string) ([]domain.StatusEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StatusEvent(nil), s.events[deliveryID]...), nil
}

// AppendBreadcrumb stores one sampled courier position.
func (s *Store) AppendBreadcrumb(_ context.Context, sample domain.LocationSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.breadcrumbs[sample.DeliveryID] = append(s.breadcrumbs[sample.DeliveryID], sample)
	return nil
}

// Breadcrumbs returns what was stored for a delivery.
func (s *Store) Breadcrumbs(deliveryID string) []domain.LocationSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LocationSample(nil), s.breadcrumbs[deliveryID]...)
}

// ListZones returns the stored zone table.
func (s *Store) ListZones(_ context.Context) ([]pricing.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pricing.Zone(nil), s.zones...), nil
}

// ReplaceZones swaps the stored zone table.
func (s *Store) ReplaceZones(_ context.Context, zones []pricing.Zone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.zones = append([]pricing.Zone(nil), zones...)
	return nil
}

// txRepo reads through to the store and stages writes. The store mutex is held by WithTx.
type txRepo struct {
	s          *Store
	deliveries map[string]*domain.Delivery
	couriers   map[string]domain.Courier
}

func (t *txRepo) GetDeliveryForUpdate(_ context.Context, id string) (*domain.Delivery, error) {
	if d, ok := t.deliveries[id]; ok {
		return d.Clone(), nil
	}
	return t.s.getDelivery(id)
}

func (t *txRepo) GetCourierForUpdate(_ context.Context, id string) (*domain.Courier, error) {
	if c, ok := t.couriers[id]; ok {
		return &c, nil
	}
	c, ok := t.s.couriers[id]
	if !ok {
		return nil, fmt.Errorf("get courier %s: %w", id, apperr.ErrNotFound)
	}
	return &c, nil
}

func (t *txRepo) SaveDelivery(_ context.Context, d *domain.Delivery) error {
	cur, ok := t.deliveries[d.ID]
	if !ok {
		cur, ok = t.s.deliveries[d.ID]
	}
	if !ok {
		return fmt.Errorf("save delivery %s: %w", d.ID, apperr.ErrNotFound)
	}
	if cur.Version != d.Version-1 {
		return fmt.Errorf("save delivery %s at version %d: %w", d.ID, d.Version, apperr.ErrConflict)
	}
	t.deliveries[d.ID] = d.Clone()
	return nil
}

func (t *txRepo) SetCourierStatus(ctx context.Context, id string, status domain.CourierStatus) error {
	c, err := t.GetCourierForUpdate(ctx, id)
	if err != nil {
		return err
	}
	c.Status = status
	t.couriers[id] = *c
	return nil
}
