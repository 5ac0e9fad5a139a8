package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-tracking/internal/logx"
	"service-tracking/internal/repository"
	"service-tracking/internal/retry"
)

var (
	newPool = repository.NewPool
	migrate = repository.Migrate

	connectBaseDelay = 500 * time.Millisecond
	connectMaxDelay  = 5 * time.Second
)

func connectDbWithRetry(ctx context.Context, dsn string, logger logx.Logger, retries int) (*pgxpool.Pool, error) {
	var lastErr error
	const attemptTimeout = 3 * time.Second
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			logger.Info("db connected", logx.Int("attempt", i))
			return pool, nil
		}
		lastErr = err
		logger.Warn("db connect failed",
			logx.Int("attempt", i),
			logx.Int("max_attempts", retries),
			logx.Err(err),
		)
		if i < retries && !wait(ctx, retry.Backoff(connectBaseDelay, connectMaxDelay, i)) {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

// migrateWithRetry waits for the database the same way connect does; on a fresh
// docker-compose stack postgres is usually not up yet.
func migrateWithRetry(ctx context.Context, dsn string, logger logx.Logger, retries int) error {
	var lastErr error
	for i := 1; i <= retries; i++ {
		if lastErr = migrate(dsn); lastErr == nil {
			logger.Info("db schema up to date")
			return nil
		}
		logger.Warn("db migrate failed",
			logx.Int("attempt", i),
			logx.Int("max_attempts", retries),
			logx.Err(lastErr),
		)
		if i < retries && !wait(ctx, retry.Backoff(connectBaseDelay, connectMaxDelay, i)) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("db migrate failed after %d attempts: %w", retries, lastErr)
}

func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
