package aicontext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/toolbox/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const fullContextKey = "aicontext:full"

// Cache stores the rendered full project context.
type Cache interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, value string)
	Invalidate(ctx context.Context)
}

type noopCache struct{}

func (noopCache) Get(context.Context) (string, bool) { return "", false }
func (noopCache) Set(context.Context, string)        {}
func (noopCache) Invalidate(context.Context)         {}

// NoopCache disables caching.
func NoopCache() Cache { return noopCache{} }

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache connects to redisURL and verifies the connection.
func NewRedisCache(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisCacheWithClient(client, ttl, logger), nil
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context) (string, bool) {
	v, err := c.client.Get(ctx, fullContextKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "context cache read failed", "error", err)
		}
		metrics.ContextCacheLookup(false)
		return "", false
	}
	metrics.ContextCacheLookup(true)
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, value string) {
	if err := c.client.Set(ctx, fullContextKey, value, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "context cache write failed", "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, fullContextKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "context cache invalidation failed", "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
