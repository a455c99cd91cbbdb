package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/moldshop/erp/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// Backend is the cache backend chosen at startup. Client is nil when the
// in-memory fallback is in use.
type Backend struct {
	Client *redis.Client
	Report ReportCache
}

// Close releases the redis client if one is open
func (b *Backend) Close() error {
	if b.Client == nil {
		return nil
	}
	return b.Client.Close()
}

// NewBackend uses redis when enabled and reachable and otherwise falls back
// to process-local caches.
func NewBackend(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Backend {
	if cfg.Enabled {
		client, err := NewRedisClient(ctx, cfg)
		if err == nil {
			logger.Info("using redis report cache", zap.String("addr", cfg.Addr()), zap.Duration("ttl", cfg.ReportTTL))
			return &Backend{Client: client, Report: NewRedisReportCache(client, cfg.ReportTTL)}
		}
		logger.Warn("redis unavailable, falling back to in-memory report cache", zap.Error(err))
	}
	return &Backend{Report: NewInMemoryReportCache(cfg.ReportTTL)}
}
