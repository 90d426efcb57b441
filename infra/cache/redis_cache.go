package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/corebank/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements IdempotencyCache using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCache creates a RedisCache from a redis:// URL.
func NewRedisCache(url, prefix string, logger *slog.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: invalid URL: %w", err)
	}
	return NewRedisCacheWithOptions(opt, prefix, logger), nil
}

// NewRedisCacheWithOptions creates a RedisCache from redis.Options.
func NewRedisCacheWithOptions(opt *redis.Options, prefix string, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger.With("component", "redis-cache"),
	}
}

func (r *RedisCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisCache) Get(ctx context.Context, key string) (*cache.Response, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("cache get error", "key", key, "error", err)
		return nil, err
	}
	var resp cache.Response
	if err := json.Unmarshal(val, &resp); err != nil {
		r.logger.Error("cache unmarshal error", "key", key, "error", err)
		return nil, err
	}
	r.logger.Debug("cache hit", "key", key)
	return &resp, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, resp *cache.Response, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		r.logger.Error("cache marshal error", "key", key, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Error("cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("cache set", "key", key, "ttl", ttl)
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("cache delete error", "key", key, "error", err)
		return err
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

var _ cache.IdempotencyCache = (*RedisCache)(nil)
