// Package cache holds the short-lived read caches in front of the report
// queries: redis when configured, a process-local map otherwise.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const reportKeyPrefix = "moldshop:report:"

// ReportCache caches report results by key
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

// RedisReportCache stores JSON-encoded report results in redis
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache creates a cache on an existing client
func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

// Get decodes the cached value into dest and reports whether it was found
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read report cache: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode report cache: %w", err)
	}
	return true, nil
}

// Set stores value under key for the configured TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}
	if err := c.client.Set(ctx, reportKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write report cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached report
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, reportKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan report cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

type cachedValue struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryReportCache is a process-local cache. Values go through the same
// JSON round trip as in redis.
type InMemoryReportCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cachedValue
	now     func() time.Time
}

// NewInMemoryReportCache creates an empty cache
func NewInMemoryReportCache(ttl time.Duration) *InMemoryReportCache {
	return &InMemoryReportCache{
		ttl:     ttl,
		entries: make(map[string]cachedValue),
		now:     time.Now,
	}
}

// Get decodes the cached value into dest and reports whether it was found
func (c *InMemoryReportCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	v, ok := c.entries[key]
	if ok && !c.now().Before(v.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(v.data, dest); err != nil {
		return false, fmt.Errorf("decode report cache: %w", err)
	}
	return true, nil
}

// Set stores value under key for the configured TTL
func (c *InMemoryReportCache) Set(_ context.Context, key string, value any) error {
	if c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedValue{data: data, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Invalidate drops every cached report
func (c *InMemoryReportCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	return nil
}

// Keys lists the stored keys in no particular order
func (c *InMemoryReportCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

var (
	_ ReportCache = (*RedisReportCache)(nil)
	_ ReportCache = (*InMemoryReportCache)(nil)
)
