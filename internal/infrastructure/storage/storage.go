// Package storage opens the task repository selected by configuration.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/config"
	pgInfra "github.com/fastygo/taskboard/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/taskboard/internal/infrastructure/redis"
	"github.com/fastygo/taskboard/internal/services/lifecycle"
	"github.com/fastygo/taskboard/repository"
	"github.com/fastygo/taskboard/repository/bolt"
	"github.com/fastygo/taskboard/repository/postgres"
	redisRepo "github.com/fastygo/taskboard/repository/redis"
	"github.com/fastygo/taskboard/repository/sqlite"
)

// Backend bundles the opened repository with its health probes and close hooks.
type Backend struct {
	Tasks   repository.TaskRepository
	Storage repository.Pinger
	Cache   repository.Pinger
	Driver  string

	// Hooks release the opened resources in opening order.
	Hooks []lifecycle.Hook

	logger *zap.Logger
}

// Close releases everything Open acquired, newest first.
func (b *Backend) Close(ctx context.Context) error {
	m := lifecycle.New(0, b.logger)
	m.Register(b.Hooks...)
	return m.Shutdown(ctx)
}

func (b *Backend) onClose(name string, fn func(ctx context.Context) error) {
	b.Hooks = append(b.Hooks, lifecycle.Hook{Name: name, Close: fn})
}

// Open connects the configured driver and, when REDIS_URL is set, wraps it with the list cache.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backend{Driver: cfg.Storage.Driver, logger: logger}

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		b.Tasks, b.Storage = repo, repo
		b.onClose("sqlite", func(context.Context) error { return repo.Close() })
		logger.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
	case config.DriverBolt:
		repo, err := bolt.Open(cfg.Storage.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("open bolt: %w", err)
		}
		b.Tasks, b.Storage = repo, repo
		b.onClose("bolt", func(context.Context) error { return repo.Close() })
		logger.Info("using bolt storage", zap.String("path", cfg.Storage.BoltPath))
	case config.DriverPostgres:
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewTaskRepository(pool)
		b.Tasks, b.Storage = repo, repo.(repository.Pinger)
		b.onClose("postgres", func(context.Context) error {
			pgInfra.Close(pool, logger)
			return nil
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Redis.Enabled() {
		client, err := redisInfra.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			_ = b.Close(ctx)
			return nil, fmt.Errorf("open redis: %w", err)
		}
		cached := redisRepo.NewCachedTaskRepository(b.Tasks, client, cfg.Redis.TTL, logger)
		b.Tasks, b.Cache = cached, cached.(repository.Pinger)
		b.onClose("redis", func(context.Context) error { return redisInfra.Close(client, logger) })
		logger.Info("task list cache enabled", zap.Duration("ttl", cfg.Redis.TTL))
	}

	return b, nil
}
