// Package cache holds the rendered resource page cache. Pages are stored as
// opaque JSON bodies keyed by resource id and dropped whenever a counter moves.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "unishare:resource:page:"

// PageCache caches rendered resource pages
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Config holds page cache configuration
type Config struct {
	URL string
	TTL time.Duration
}

// ResourcePageKey returns the cache key of a resource detail page
func ResourcePageKey(resourceID string) string {
	return keyPrefix + resourceID
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisCache connects to redis and verifies the connection with a ping
func NewRedisCache(cfg Config, logger zerolog.Logger) (PageCache, error) {
	options, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisCache(client, cfg.TTL, logger), nil
}

func newRedisCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *redisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "page_cache").Logger(),
	}
}

// Get returns the cached value. Any redis failure is treated as a miss.
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("Page cache read failed")
		}
		return nil, false
	}
	return value, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// noopCache is used when redis is disabled or unreachable
type noopCache struct{}

// NewNoopCache returns a cache that never stores anything
func NewNoopCache() PageCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noopCache) Set(context.Context, string, []byte) error { return nil }
func (noopCache) Delete(context.Context, ...string) error { return nil }
func (noopCache) Ping(context.Context) error { return nil }
func (noopCache) Close() error { return nil }
