package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openbooks/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache implements report.Cache on Redis, suitable for deployments
// where several instances share one report cache.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCache creates a Redis-backed report cache and verifies the
// connection before returning.
func NewRedisCache(cfg RedisConfig, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, logger: logger}, nil
}

// NewRedisCacheWithClient creates a cache on an existing Redis client
func NewRedisCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Get returns the cached value for key and whether it was present
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key without expiry; entries only leave the
// cache through prefix invalidation.
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

// InvalidatePrefix removes every key sharing the prefix. Keys are found
// with SCAN to avoid blocking Redis; if the sweep fails the whole
// database is flushed so no stale report can survive.
func (c *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if err := c.deleteByPattern(ctx, prefix+"*"); err != nil {
		c.logger.Warn("pattern delete failed, flushing cache database",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
		return c.client.FlushDB(ctx).Err()
	}
	return nil
}

func (c *RedisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()

	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return c.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Close closes the underlying Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements report.Cache
var _ report.Cache = (*RedisCache)(nil)
