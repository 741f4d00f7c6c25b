// Package redis connects the client backing the task list cache.
package redis

import (
	"context"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/config"
)

const (
	pingTimeout = 5 * time.Second
	dialTimeout = 3 * time.Second
	ioTimeout   = time.Second
)

// Options translates RedisConfig into client options. REDIS_PASSWORD and REDIS_DB
// override whatever the URL carries.
func Options(cfg config.RedisConfig) (*goRedis.Options, error) {
	opts, err := goRedis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = ioTimeout
	opts.WriteTimeout = ioTimeout
	return opts, nil
}

// NewClient connects and pings Redis. A cache that cannot be reached at startup is
// reported as an error rather than silently bypassed.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*goRedis.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	client := goRedis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}

// Close releases the client and logs the result.
func Close(client *goRedis.Client, logger *zap.Logger) error {
	if client == nil {
		return nil
	}
	err := client.Close()
	if logger != nil && err == nil {
		logger.Info("redis client closed")
	}
	return err
}
