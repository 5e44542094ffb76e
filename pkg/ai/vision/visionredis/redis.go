package visionredis

import (
	"context"
	"fmt"
	"time"

	"github.com/casedesk/casedesk/pkg/ai/vision"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements vision.ResultCache backed by Redis so cached
// provider results survive process restarts and can be shared between
// API instances.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a Redis-backed result cache. A zero ttl keeps
// entries until evicted.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(key vision.CacheKey) string {
	return fmt.Sprintf("vision:result:%s", key.String())
}

// Get returns the cached raw response for the key, if present.
func (c *RedisCache) Get(ctx context.Context, key vision.CacheKey) (string, bool, error) {
	value, err := c.rdb.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, redisErrors.NewWithCause(ErrGet, err).WithDetail("key", key.String())
	}
	return value, true, nil
}

// Set stores the raw response under the key.
func (c *RedisCache) Set(ctx context.Context, key vision.CacheKey, value string) error {
	if err := c.rdb.Set(ctx, cacheKey(key), value, c.ttl).Err(); err != nil {
		return redisErrors.NewWithCause(ErrSet, err).WithDetail("key", key.String())
	}
	return nil
}
