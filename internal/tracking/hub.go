// Package tracking holds live courier positions and fans updates out to subscribers.
package tracking

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"service-tracking/internal/apperr"
	"service-tracking/internal/domain"
	"service-tracking/internal/lifecycle"
	"service-tracking/internal/logx"
)

// ErrRejected is returned for samples that fail validation or target a delivery
// that is not being tracked.
var ErrRejected = apperr.NewKind("sample rejected", "rejected", apperr.ErrInvalid)

// ErrUnknownConnection is returned for ids the hub does not hold, including dropped ones.
var ErrUnknownConnection = apperr.NewKind("unknown connection", apperr.CodeNotFound, apperr.ErrNotFound)

// Outcome of an accepted publish call.
type Outcome string

// Publish outcomes that are not errors.
const (
	Accepted Outcome = "accepted"
	// Stale samples are older than or as old as the current position. They are dropped
	// silently.
	Stale Outcome = "stale"
)

// Config tunes the hub.
type Config struct {
	HeartbeatTimeout time.Duration
	JanitorInterval  time.Duration
	QueueSize        int
	ClockSkew        time.Duration
	Shards           int
}

func (c Config) withDefaults() Config {
	if c.HeartbeatTimeout <= 0 {
		c.HeartbeatTimeout = 30 * time.Second
	}
	if c.JanitorInterval <= 0 {
		c.JanitorInterval = c.HeartbeatTimeout / 3
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
	if c.ClockSkew < 0 {
		c.ClockSkew = 0
	}
	if c.Shards <= 0 {
		c.Shards = 32
	}
	return c
}

// Hub is safe for concurrent use. Per-delivery state is guarded by its own mutex so
// unrelated deliveries never contend.
type Hub struct {
	cfg        Config
	auth       Authenticator
	deliveries DeliveryReader
	sink       SampleSink
	obs        Observer
	logger     logx.Logger
	now        func() time.Time
	newID      func() string

	applierMu sync.RWMutex
	applier   StatusApplier

	states []*stateShard
	conns  []*connShard
}

// Option customizes a Hub.
type Option func(*Hub)

// WithObserver reports hub events to o.
func WithObserver(o Observer) Option { return func(h *Hub) { h.obs = o } }

// WithSampleSink hands accepted samples to s.
func WithSampleSink(s SampleSink) Option { return func(h *Hub) { h.sink = s } }

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option { return func(h *Hub) { h.now = now } }

// NewHub builds a hub. auth and deliveries are required.
func NewHub(cfg Config, auth Authenticator, deliveries DeliveryReader, logger logx.Logger, opts ...Option) *Hub {
	if logger == nil {
		logger = logx.Nop()
	}
	cfg = cfg.withDefaults()
	h := &Hub{
		cfg:        cfg,
		auth:       auth,
		deliveries: deliveries,
		sink:       nopSink{},
		obs:        nopObserver{},
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
		states:     newStateShards(cfg.Shards),
		conns:      newConnShards(cfg.Shards),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BindStatusApplier sets where ApplyStatusChange sends transitions.
func (h *Hub) BindStatusApplier(a StatusApplier) {
	h.applierMu.Lock()
	defer h.applierMu.Unlock()
	h.applier = a
}

// Connect authenticates credentials and registers a new connection. A cancelled ctx
// leaves nothing behind.
func (h *Hub) Connect(ctx context.Context, credentials string) (*Conn, error) {
	id, err := h.auth.Authenticate(ctx, credentials)
	if err != nil {
		h.logger.Warn("connection rejected", logx.Err(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !id.Role.Valid() || id.UserID == "" {
		return nil, fmt.Errorf("%w: identity without user or role", apperr.ErrUnauthorized)
	}

	c := newConn(h.newID(), id, h.cfg.QueueSize, h.now())
	sh := h.connShard(c.id)
	sh.mu.Lock()
	sh.m[c.id] = c
	sh.mu.Unlock()

	h.obs.ConnectionOpened()
	h.logger.Debug("connection opened",
		logx.String("conn_id", c.id),
		logx.String("user_id", id.UserID),
		logx.String("role", string(id.Role)),
	)
	return c, nil
}

// Subscribe binds the connection to a delivery's update stream and queues a
// "subscribed" snapshot ahead of any later update. Subscribing twice is a no-op apart
// from a fresh snapshot.
func (h *Hub) Subscribe(ctx context.Context, connID, deliveryID string) (Snapshot, error) {
	c, err := h.conn(connID)
	if err != nil {
		return Snapshot{}, err
	}
	now := h.now()
	c.touch(now)

	d, err := h.deliveries.GetDelivery(ctx, deliveryID)
	if err != nil {
		return Snapshot{}, err
	}
	if !c.identity.CanView(d) {
		h.logger.Warn("subscription denied",
			logx.String("conn_id", connID),
			logx.String("user_id", c.identity.UserID),
			logx.String("role", string(c.identity.Role)),
			logx.String("delivery_id", deliveryID),
		)
		return Snapshot{}, fmt.Errorf("%w: %s may not watch delivery %s", apperr.ErrUnauthorized, c.identity.UserID, deliveryID)
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	st := h.lockState(deliveryID, true)
	defer st.mu.Unlock()

	if c.closed() {
		h.releaseIfIdle(st)
		return Snapshot{}, ErrUnknownConnection
	}
	// сессия и проверка закрытия атомарны относительно detach в Disconnect
	if _, ok := st.subscribers[connID]; !ok {
		if !c.addSession(deliveryID, now) {
			h.releaseIfIdle(st)
			return Snapshot{}, ErrUnknownConnection
		}
		st.subscribers[connID] = c
		h.obs.SessionsChanged(1)
	}
	if d.Version >= st.version {
		st.status = d.Status
		st.version = d.Version
		if st.courierID == "" {
			st.courierID = d.CourierID
		}
	}

	snap := st.snapshot()
	h.send(st, c, Message{Type: MsgSubscribed, DeliveryID: deliveryID, Snapshot: &snap})
	return snap, nil
}

// Unsubscribe ends one session. Unknown sessions are ignored.
func (h *Hub) Unsubscribe(connID, deliveryID string) error {
	c, err := h.conn(connID)
	if err != nil {
		return err
	}
	c.touch(h.now())
	c.removeSession(deliveryID)

	st := h.lockState(deliveryID, false)
	if st == nil {
		return nil
	}
	defer st.mu.Unlock()
	h.dropSubscriber(st, connID)
	h.releaseIfIdle(st)
	return nil
}

// Publish accepts a courier position for the delivery the courier is assigned to and
// fans it out to every other session of that delivery.
func (h *Hub) Publish(connID string, s domain.LocationSample) (Outcome, error) {
	c, err := h.conn(connID)
	if err != nil {
		return "", err
	}
	now := h.now()
	c.touch(now)

	if c.identity.Role != domain.RoleCourier {
		h.obs.Sample("unauthorized")
		return "", fmt.Errorf("%w: only couriers publish positions", apperr.ErrUnauthorized)
	}
	if err := h.validateSample(s, now); err != nil {
		h.obs.Sample("rejected")
		return "", err
	}

	st := h.lockState(s.DeliveryID, false)
	if st == nil {
		h.obs.Sample("rejected")
		return "", fmt.Errorf("%w: delivery %s is not being tracked", ErrRejected, s.DeliveryID)
	}
	defer st.mu.Unlock()

	if !st.live {
		h.obs.Sample("rejected")
		return "", fmt.Errorf("%w: delivery %s is not being tracked", ErrRejected, s.DeliveryID)
	}
	if st.courierID != c.identity.UserID {
		h.obs.Sample("unauthorized")
		return "", fmt.Errorf("%w: courier %s is not assigned to delivery %s", apperr.ErrUnauthorized, c.identity.UserID, s.DeliveryID)
	}
	if cur := c.publishingFor(); cur != "" && cur != s.DeliveryID {
		h.obs.Sample("rejected")
		return "", fmt.Errorf("%w: connection already publishes for delivery %s", ErrRejected, cur)
	}
	if st.position != nil && !s.CapturedAt.After(st.position.CapturedAt) {
		h.obs.Sample("stale")
		return Stale, nil
	}

	if !c.setPublishing(s.DeliveryID) {
		return "", ErrUnknownConnection
	}
	s.CourierID = c.identity.UserID
	s.ReceivedAt = now
	if s.Heading != nil {
		hd := *s.Heading
		s.Heading = &hd
	}
	st.position = &s

	if st.publisherConn != connID || !st.publisherOnline {
		st.publisherConn = connID
		if !st.publisherOnline {
			st.publisherOnline = true
			h.fanout(st, Message{Type: MsgPublisherStatus, DeliveryID: st.id, Online: true}, connID)
		}
	}

	out := s
	h.fanout(st, Message{Type: MsgLocation, DeliveryID: st.id, Location: &out}, connID)
	h.sink.RecordSample(s)
	h.obs.Sample("accepted")
	return Accepted, nil
}

func (h *Hub) validateSample(s domain.LocationSample, now time.Time) error {
	if s.DeliveryID == "" {
		return fmt.Errorf("%w: delivery id is required", ErrRejected)
	}
	if err := s.Position.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if s.Heading != nil {
		if hd := *s.Heading; math.IsNaN(hd) || hd < 0 || hd >= 360 {
			return fmt.Errorf("%w: heading %v outside [0, 360)", ErrRejected, hd)
		}
	}
	if s.CapturedAt.IsZero() {
		return fmt.Errorf("%w: capturedAt is required", ErrRejected)
	}
	if s.CapturedAt.After(now.Add(h.cfg.ClockSkew)) {
		return fmt.Errorf("%w: capturedAt %s is ahead of server time", ErrRejected, s.CapturedAt.Format(time.RFC3339Nano))
	}
	return nil
}

// Ping refreshes the connection's liveness.
func (h *Hub) Ping(connID string) error {
	c, err := h.conn(connID)
	if err != nil {
		return err
	}
	c.touch(h.now())
	return nil
}

// ApplyStatusChange runs a transition on behalf of the connection's user. Fan-out
// happens in the applier after the new status is stored.
func (h *Hub) ApplyStatusChange(ctx context.Context, connID, deliveryID string, req lifecycle.Request) (*domain.Delivery, bool, error) {
	c, err := h.conn(connID)
	if err != nil {
		return nil, false, err
	}
	c.touch(h.now())

	h.applierMu.RLock()
	a := h.applier
	h.applierMu.RUnlock()
	if a == nil {
		return nil, false, fmt.Errorf("%w: status changes are not wired", apperr.ErrTransient)
	}

	req.Actor = c.identity
	return a.Transition(ctx, deliveryID, req)
}

// Disconnect drops the connection and all its sessions. If it was the live publisher
// of a delivery, subscribers are told the publisher went offline; the delivery status
// is not touched. Unknown ids are ignored.
func (h *Hub) Disconnect(connID, reason string) {
	sh := h.connShard(connID)
	sh.mu.Lock()
	c, ok := sh.m[connID]
	delete(sh.m, connID)
	sh.mu.Unlock()
	if !ok {
		return
	}

	c.close(reason)
	for _, deliveryID := range c.detach() {
		st := h.lockState(deliveryID, false)
		if st == nil {
			continue
		}
		h.dropSubscriber(st, connID)
		if st.publisherConn == connID && st.publisherOnline {
			st.publisherOnline = false
			h.fanout(st, Message{Type: MsgPublisherStatus, DeliveryID: st.id, Online: false}, "")
		}
		h.releaseIfIdle(st)
		st.mu.Unlock()
	}

	h.obs.ConnectionClosed(reason)
	h.logger.Debug("connection closed",
		logx.String("conn_id", connID),
		logx.String("user_id", c.identity.UserID),
		logx.String("reason", reason),
	)
}

// Activate marks a delivery live for its assigned courier.
func (h *Hub) Activate(d *domain.Delivery) {
	st := h.lockState(d.ID, true)
	defer st.mu.Unlock()

	if st.courierID != d.CourierID {
		st.position = nil
		st.publisherConn = ""
		st.publisherOnline = false
	}
	st.live = true
	st.courierID = d.CourierID
	if d.Version >= st.version {
		st.status = d.Status
		st.version = d.Version
	}
}

// Deactivate ends tracking: every session gets tracking_ended and is dropped, and the
// in-memory position is forgotten.
func (h *Hub) Deactivate(deliveryID, reason string) {
	st := h.lockState(deliveryID, false)
	if st == nil {
		return
	}
	defer st.mu.Unlock()

	h.fanout(st, Message{Type: MsgTrackingEnded, DeliveryID: deliveryID, Reason: reason}, "")
	for id, c := range st.subscribers {
		c.removeSession(deliveryID)
		delete(st.subscribers, id)
		h.obs.SessionsChanged(-1)
	}
	if st.publisherConn != "" {
		if c, err := h.conn(st.publisherConn); err == nil {
			c.clearPublishing(deliveryID)
		}
	}
	st.live = false
	st.position = nil
	st.publisherConn = ""
	st.publisherOnline = false
	h.releaseIfIdle(st)
}

// BroadcastStatus fans a stored status change out to the delivery's sessions. Changes
// older than what the hub already saw are dropped so every session sees statuses in
// version order.
func (h *Hub) BroadcastStatus(d *domain.Delivery, ev domain.StatusEvent) {
	st := h.lockState(d.ID, false)
	if st == nil {
		return
	}
	defer st.mu.Unlock()

	// a newer status already went out
	if d.Version < st.version {
		return
	}
	st.status = d.Status
	st.version = d.Version
	out := ev
	h.fanout(st, Message{Type: MsgStatus, DeliveryID: d.ID, Status: &out}, "")
}

// Snapshot returns the hub's view of a delivery, if it holds one.
func (h *Hub) Snapshot(deliveryID string) (Snapshot, bool) {
	st := h.lockState(deliveryID, false)
	if st == nil {
		return Snapshot{}, false
	}
	defer st.mu.Unlock()
	return st.snapshot(), true
}

// Live reports whether the delivery is open for courier publishing.
func (h *Hub) Live(deliveryID string) bool {
	st := h.lockState(deliveryID, false)
	if st == nil {
		return false
	}
	defer st.mu.Unlock()
	return st.live
}

// Close drops every connection.
func (h *Hub) Close() {
	for _, sh := range h.conns {
		sh.mu.RLock()
		ids := make([]string, 0, len(sh.m))
		for id := range sh.m {
			ids = append(ids, id)
		}
		sh.mu.RUnlock()
		for _, id := range ids {
			h.Disconnect(id, ReasonShutdown)
		}
	}
}

func (h *Hub) conn(id string) (*Conn, error) {
	sh := h.connShard(id)
	sh.mu.RLock()
	c, ok := sh.m[id]
	sh.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownConnection
	}
	return c, nil
}

func (h *Hub) connShard(id string) *connShard { return h.conns[shardIndex(id, len(h.conns))] }

// lockState returns the locked state for a delivery, creating it when create is set.
// It returns nil only when create is false and the hub holds nothing for the id.
func (h *Hub) lockState(deliveryID string, create bool) *deliveryState {
	sh := h.states[shardIndex(deliveryID, len(h.states))]
	for {
		sh.mu.Lock()
		st, ok := sh.m[deliveryID]
		if !ok {
			if !create {
				sh.mu.Unlock()
				return nil
			}
			st = &deliveryState{id: deliveryID, subscribers: make(map[string]*Conn)}
			sh.m[deliveryID] = st
		}
		sh.mu.Unlock()

		st.mu.Lock()
		if !st.removed {
			return st
		}
		st.mu.Unlock()
	}
}

// releaseIfIdle forgets a state nobody needs. st.mu must be held.
func (h *Hub) releaseIfIdle(st *deliveryState) {
	if !st.idle() || st.removed {
		return
	}
	sh := h.states[shardIndex(st.id, len(h.states))]
	sh.mu.Lock()
	if sh.m[st.id] == st {
		delete(sh.m, st.id)
	}
	sh.mu.Unlock()
	st.removed = true
}

// dropSubscriber removes one session. st.mu must be held.
func (h *Hub) dropSubscriber(st *deliveryState, connID string) {
	if _, ok := st.subscribers[connID]; ok {
		delete(st.subscribers, connID)
		h.obs.SessionsChanged(-1)
	}
}

// fanout queues m for every session except exclude. A connection whose queue is full
// is dropped instead of slowing the publisher down. st.mu must be held.
func (h *Hub) fanout(st *deliveryState, m Message, exclude string) {
	for id, c := range st.subscribers {
		if id == exclude {
			continue
		}
		h.send(st, c, m)
	}
}

func (h *Hub) send(st *deliveryState, c *Conn, m Message) {
	if c.enqueue(m) {
		return
	}
	h.dropSubscriber(st, c.id)
	c.removeSession(st.id)
	if c.closed() {
		return
	}
	h.obs.FanoutDropped()
	h.logger.Warn("slow consumer dropped",
		logx.String("conn_id", c.id),
		logx.String("delivery_id", st.id),
		logx.String("message", string(m.Type)),
	)
	c.close(ReasonSlowConsumer)
	go h.Disconnect(c.id, ReasonSlowConsumer)
}
