package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/palabras-bot/internal/config"
	"github.com/aliskhannn/palabras-bot/internal/infra/postgres"
	"github.com/aliskhannn/palabras-bot/internal/infra/sqlite"
	"github.com/aliskhannn/palabras-bot/internal/repository"
	"github.com/aliskhannn/palabras-bot/internal/storage"
)

// openStore opens the progress backend selected by the configuration.
// The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.KVStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, progress is lost on restart")
		return storage.NewMemoryStore(), func() {}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info("sqlite storage opened", zap.String("path", cfg.Storage.SQLitePath))

		return db, func() {
			if err := db.Close(); err != nil {
				log.Warn("failed to close sqlite", zap.Error(err))
			}
		}, nil

	case config.DriverPostgres:
		dsn, err := cfg.Storage.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.Storage.MaxConnections),
			MaxConnLifetime: cfg.Storage.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		kv := postgres.NewKVStore(pool, postgres.NewTransactor(pool))
		if err := kv.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("postgres storage opened")

		return kv, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}
