package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopmetrics/backend/internal/infrastructure/config"
)

// ReportCache caches serialized report payloads keyed by tenant and report
// name. Implementations must treat misses and backend failures the same way:
// callers always fall through to the database.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, key string)
}

// RedisReportCache implements ReportCache using Redis.
// Suitable for distributed deployments where multiple instances serve the
// same dashboards.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisReportCache creates a Redis-backed report cache and verifies the
// connection before returning
func NewRedisReportCache(cfg config.RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: "report:",
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "report:"
	}
	return &RedisReportCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached payload for a key, or false on miss or error
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores a payload with a TTL. Errors are swallowed: a cache write
// failure must never fail the request that produced the payload.
func (c *RedisReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.client.Set(ctx, c.keyPrefix+key, value, ttl)
}

// Invalidate drops a cached payload
func (c *RedisReportCache) Invalidate(ctx context.Context, key string) {
	c.client.Del(ctx, c.keyPrefix+key)
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

var _ ReportCache = (*RedisReportCache)(nil)
