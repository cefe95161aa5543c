// Package redis provides a Redis-backed cache implementation for
// multi-instance deployments.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/config"
	"github.com/prn-tf/package-catalog/internal/repository"
)

// Cache implements repository.Cache using Redis.
type Cache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewCache connects to Redis and returns a Cache.
func NewCache(ctx context.Context, cfg config.RedisConfig, logger zerolog.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logger.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Msg("connected to Redis")

	return &Cache{
		client: client,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}, nil
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrCacheUnavailable, err)
	}
	return data, nil
}

// Set stores a value with an optional TTL. A zero TTL means no expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrCacheUnavailable, err)
	}
	return nil
}

// Delete removes a value by key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrCacheUnavailable, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// Ensure Cache implements repository.Cache.
var _ repository.Cache = (*Cache)(nil)
