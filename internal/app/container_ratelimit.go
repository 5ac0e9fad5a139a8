package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-tracking/internal/config"
	"service-tracking/internal/http/middleware/ratelimit"
	"service-tracking/internal/logx"
	"service-tracking/internal/metrics"
)

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

func newAPILimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newConnectLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled || rl.ConnectsPerMinute <= 0 {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketPerWindow(clock, rl.ConnectsPerMinute, time.Minute, rl.TTL, rl.MaxBuckets)
}

func newRateLimitMiddleware(
	cfg *config.Config,
	clock ratelimit.Clock,
	logger logx.Logger,
	reg prometheus.Registerer,
) (*ratelimit.Middleware, error) {
	denied := metrics.NewRateLimitExceededTotal()
	if err := reg.Register(denied); err != nil {
		return nil, err
	}
	return ratelimit.New(logger, denied, newAPILimiter(cfg, clock),
		ratelimit.WithConnectLimiter(newConnectLimiter(cfg, clock)),
	), nil
}
