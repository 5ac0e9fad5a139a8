package tracking

import (
	"sync"
	"sync/atomic"
	"time"

	"service-tracking/internal/domain"
)

// Reasons a connection or a tracking session ends.
const (
	ReasonClientClosed = "client_closed"
	ReasonSlowConsumer = "slow_consumer"
	ReasonHeartbeat    = "heartbeat_timeout"
	ReasonShutdown     = "shutdown"
)

// MessageType names an outbound message.
type MessageType string

// Outbound message types.
const (
	MsgSubscribed      MessageType = "subscribed"
	MsgLocation        MessageType = "location_update"
	MsgStatus          MessageType = "status_update"
	MsgPublisherStatus MessageType = "publisher_status"
	MsgTrackingEnded   MessageType = "tracking_ended"
)

// Message is queued for delivery to one connection.
type Message struct {
	Type       MessageType
	DeliveryID string
	Snapshot   *Snapshot
	Location   *domain.LocationSample
	Status     *domain.StatusEvent
	Online     bool
	Reason     string
}

// Snapshot is the state a fresh subscriber starts from.
type Snapshot struct {
	DeliveryID      string
	Status          domain.DeliveryStatus
	CourierID       string
	Position        *domain.LocationSample
	PublisherOnline bool
}

// Conn is one authenticated client connection. The transport drains Outbound until
// Done is closed.
type Conn struct {
	id       string
	identity domain.Identity
	out      chan Message
	done     chan struct{}

	closeOnce sync.Once
	lastSeen  atomic.Int64

	mu         sync.Mutex
	reason     string
	sessions   map[string]time.Time
	publishing string
	// detached is set once Disconnect collected the sessions; nothing attaches after it.
	detached bool
}

func newConn(id string, identity domain.Identity, queue int, now time.Time) *Conn {
	c := &Conn{
		id:       id,
		identity: identity,
		out:      make(chan Message, queue),
		done:     make(chan struct{}),
		sessions: make(map[string]time.Time),
	}
	c.touch(now)
	return c
}

// ID returns the connection id.
func (c *Conn) ID() string { return c.id }

// Identity returns who is on the other end.
func (c *Conn) Identity() domain.Identity { return c.identity }

// Outbound yields messages in the order they were queued.
func (c *Conn) Outbound() <-chan Message { return c.out }

// Done is closed when the hub has dropped the connection.
func (c *Conn) Done() <-chan struct{} { return c.done }

// Reason tells why the connection was dropped; empty while open.
func (c *Conn) Reason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// Sessions returns the delivery ids this connection is subscribed to.
func (c *Conn) Sessions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.sessions))
	for id := range c.sessions {
		out = append(out, id)
	}
	return out
}

func (c *Conn) touch(now time.Time) { c.lastSeen.Store(now.UnixNano()) }

func (c *Conn) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, c.lastSeen.Load()))
}

func (c *Conn) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Conn) close(reason string) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.reason = reason
		c.mu.Unlock()
		close(c.done)
	})
}

// enqueue never blocks. false means the message was not queued because the
// connection is closed or its queue is full.
func (c *Conn) enqueue(m Message) bool {
	if c.closed() {
		return false
	}
	select {
	case c.out <- m:
		return true
	default:
		return false
	}
}

// addSession reports false when the connection is already detached.
func (c *Conn) addSession(deliveryID string, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detached {
		return false
	}
	if _, ok := c.sessions[deliveryID]; !ok {
		c.sessions[deliveryID] = at
	}
	return true
}

func (c *Conn) removeSession(deliveryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, deliveryID)
}

func (c *Conn) publishingFor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishing
}

// setPublishing reports false when the connection is already detached.
func (c *Conn) setPublishing(deliveryID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detached {
		return false
	}
	c.publishing = deliveryID
	return true
}

func (c *Conn) clearPublishing(deliveryID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.publishing == deliveryID {
		c.publishing = ""
	}
}

// detach empties the session table and returns every delivery the connection touched.
func (c *Conn) detach() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.sessions)+1)
	for id := range c.sessions {
		ids = append(ids, id)
	}
	if c.publishing != "" {
		if _, ok := c.sessions[c.publishing]; !ok {
			ids = append(ids, c.publishing)
		}
	}
	c.sessions = make(map[string]time.Time)
	c.publishing = ""
	c.detached = true
	return ids
}
