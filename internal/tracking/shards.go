package tracking

import (
	"hash/fnv"
	"sync"

	"service-tracking/internal/domain"
)

// deliveryState is everything the hub knows about one delivery. Fields are guarded by mu.
type deliveryState struct {
	mu sync.Mutex
	id string

	// removed is set once the state left its shard; holders must look it up again.
	removed bool

	live      bool
	courierID string
	status    domain.DeliveryStatus
	version   int64

	position        *domain.LocationSample
	publisherConn   string
	publisherOnline bool

	subscribers map[string]*Conn
}

func (st *deliveryState) snapshot() Snapshot {
	s := Snapshot{
		DeliveryID:      st.id,
		Status:          st.status,
		CourierID:       st.courierID,
		PublisherOnline: st.publisherOnline,
	}
	if st.position != nil {
		p := *st.position
		s.Position = &p
	}
	return s
}

func (st *deliveryState) idle() bool {
	return !st.live && len(st.subscribers) == 0
}

type stateShard struct {
	mu sync.Mutex
	m  map[string]*deliveryState
}

type connShard struct {
	mu sync.RWMutex
	m  map[string]*Conn
}

func shardIndex(key string, n int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}

func newStateShards(n int) []*stateShard {
	out := make([]*stateShard, n)
	for i := range out {
		out[i] = &stateShard{m: make(map[string]*deliveryState)}
	}
	return out
}

func newConnShards(n int) []*connShard {
	out := make([]*connShard, n)
	for i := range out {
		out[i] = &connShard{m: make(map[string]*Conn)}
	}
	return out
}
