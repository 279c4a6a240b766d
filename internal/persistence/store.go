package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/config"
	"github.com/spec-kit/leads-service/internal/docstore"
)

// OpenStore connects the document store selected by cfg.Store.Driver.
// The returned close function releases the underlying connection.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (docstore.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.PoolHandle(), MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return docstore.NewPostgresStore(pg.PoolHandle()), pg.Close, nil
	case config.StoreDriverRedis:
		rdb := NewRedis(cfg.Redis, logger)
		return docstore.NewRedisStore(rdb.Client, cfg.Redis.KeyPrefix), rdb.Close, nil
	case config.StoreDriverMemory, "":
		logger.Warn("using in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
