package tracking

import (
	"context"
	"time"

	"service-tracking/internal/logx"
)

// Run evicts idle connections until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	t := time.NewTicker(h.cfg.JanitorInterval)
	defer t.Stop()

	h.logger.Info("tracking janitor started",
		logx.Duration("heartbeat_timeout", h.cfg.HeartbeatTimeout),
		logx.Duration("interval", h.cfg.JanitorInterval),
	)
	for {
		select {
		case <-ctx.Done():
			h.Close()
			return nil
		case <-t.C:
			h.EvictStale()
		}
	}
}

// EvictStale drops connections that neither published nor pinged within the heartbeat
// timeout and returns how many were dropped.
func (h *Hub) EvictStale() int {
	now := h.now()
	var stale []string
	for _, sh := range h.conns {
		sh.mu.RLock()
		for id, c := range sh.m {
			if c.idleSince(now) > h.cfg.HeartbeatTimeout {
				stale = append(stale, id)
			}
		}
		sh.mu.RUnlock()
	}

	for _, id := range stale {
		h.Disconnect(id, ReasonHeartbeat)
		h.obs.Evicted()
	}
	if len(stale) > 0 {
		h.logger.Info("evicted idle connections", logx.Int("count", len(stale)))
	}
	return len(stale)
}
