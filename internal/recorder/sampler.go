package recorder

import (
	"hash/fnv"
	"sync"
	"time"

	"service-tracking/internal/domain"
	"service-tracking/internal/geo"
)

// samplerShards spreads deliveries over independent locks so publishes for unrelated
// deliveries never wait on each other.
const samplerShards = 32

type mark struct {
	at  time.Time
	pos geo.Point
}

type samplerShard struct {
	mu   sync.Mutex
	last map[string]mark
}

// sampler thins the accepted position stream down to breadcrumbs: a sample is kept
// when enough time passed or the courier moved far enough since the last kept one.
type sampler struct {
	interval  time.Duration
	minMeters float64
	shards    []*samplerShard
}

func newSampler(interval time.Duration, minMeters float64) *sampler {
	s := &sampler{
		interval:  interval,
		minMeters: minMeters,
		shards:    make([]*samplerShard, samplerShards),
	}
	for i := range s.shards {
		s.shards[i] = &samplerShard{last: make(map[string]mark)}
	}
	return s
}

func (s *sampler) shard(deliveryID string) *samplerShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(deliveryID))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *sampler) keep(sample domain.LocationSample) bool {
	sh := s.shard(sample.DeliveryID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	prev, ok := sh.last[sample.DeliveryID]
	if ok {
		elapsed := sample.CapturedAt.Sub(prev.at)
		moved := geo.DistanceKm(prev.pos, sample.Position) * 1000
		if elapsed < s.interval && moved < s.minMeters {
			return false
		}
	}
	sh.last[sample.DeliveryID] = mark{at: sample.CapturedAt, pos: sample.Position}
	return true
}

func (s *sampler) forget(deliveryID string) {
	sh := s.shard(deliveryID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.last, deliveryID)
}

func (s *sampler) size() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.last)
		sh.mu.Unlock()
	}
	return n
}
