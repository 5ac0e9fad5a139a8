package app

import (
	"context"

	"service-tracking/internal/config"
	"service-tracking/internal/logx"
	"service-tracking/internal/recorder"
	"service-tracking/internal/repository"
	"service-tracking/internal/repository/memory"
	"service-tracking/internal/service/dispatch"
)

// Storage is what every backend offers: deliveries, couriers, zones and the audit trail.
type Storage interface {
	dispatch.DeliveryRepository
	dispatch.CourierRepository
	dispatch.ZoneRepository
	recorder.Store
}

// storeCloser releases the backend. Never nil.
type storeCloser func()

type storeOpener func(ctx context.Context, cfg *config.Config, logger logx.Logger) (Storage, storeCloser, error)

var (
	_ Storage = (*repository.Store)(nil)
	_ Storage = (*memory.Store)(nil)
)

func openStore(ctx context.Context, cfg *config.Config, logger logx.Logger) (Storage, storeCloser, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	dsn := cfg.DB.DSN()
	if cfg.DB.Migrate {
		if err := migrateWithRetry(ctx, dsn, logger, 10); err != nil {
			return nil, nil, err
		}
	}
	pool, err := connectDbWithRetry(ctx, dsn, logger, 10)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewStore(pool), pool.Close, nil
}
