// Package retry runs operations with bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"service-tracking/internal/apperr"
	"service-tracking/internal/logx"
)

type counter interface {
	Inc()
}

// Config describes how many times and how quickly to retry.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Retrier retries operations whose errors are transient.
type Retrier struct {
	cfg       Config
	logger    logx.Logger
	retries   counter
	retryable func(error) bool
	sleep     func(context.Context, time.Duration) bool
}

// New returns a Retrier that retries errors wrapping apperr.ErrTransient. retries may be nil.
func New(cfg Config, logger logx.Logger, retries counter) *Retrier {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Retrier{
		cfg:       cfg,
		logger:    logger,
		retries:   retries,
		retryable: Transient,
		sleep:     sleepWithContext,
	}
}

// Do calls fn until it succeeds, returns a non-retryable error, ctx is done or attempts
// run out. The last error is returned.
func (r *Retrier) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		// не повторяем, если контекст отменен или ошибка не временная
		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !r.retryable(err) {
			break
		}

		delay := Backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("retrying operation",
			logx.String("op", op),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !r.sleep(ctx, delay) {
			break
		}
	}
	return lastErr
}

// Transient reports whether err is worth retrying.
func Transient(err error) bool {
	return errors.Is(err, apperr.ErrTransient) || errors.Is(err, context.DeadlineExceeded)
}

// Backoff returns base doubled for every previous attempt, capped at max.
func Backoff(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 1; i < attempt && d > 0 && d < max; i++ {
		d <<= 1
	}
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
