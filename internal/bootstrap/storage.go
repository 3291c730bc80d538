package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"roomcraft/internal/config"
	"roomcraft/internal/db"
	"roomcraft/internal/repository"
)

// NewSnapshotRepository elige el backend de persistencia segun la config.
// El cleanup devuelto cierra las conexiones abiertas y siempre es no nulo.
func NewSnapshotRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SnapshotRepository, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		logger.Warn("memory store backend: sessions will not survive a restart")
		return repository.NewMemorySnapshotRepository(), noop, nil

	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			// El store degrada a memoria si las escrituras fallan; no abortamos el arranque.
			logger.Warn("redis ping failed", zap.Error(err))
		}
		return repository.NewRedisSnapshotRepository(client, cfg.StoreKey), func() { client.Close() }, nil

	case config.StoreBackendPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("db connect: %w", err)
		}
		if err := db.Ping(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("db ping: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("db migrate: %w", err)
		}
		return repository.NewPgSnapshotRepository(pool, cfg.StoreKey), pool.Close, nil

	case config.StoreBackendFile, "":
		return repository.NewFileSnapshotRepository(cfg.StorePath), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
