package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"user-admin-console/internal/platform/redis"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type CacheService struct {
	redisClient redis.RedisClient
	prefix      string
}

// NewCacheService stores JSON values under prefix-qualified keys.
func NewCacheService(redisClient redis.RedisClient, prefix string) *CacheService {
	return &CacheService{
		redisClient: redisClient,
		prefix:      prefix,
	}
}

func (c *CacheService) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// Get decodes the value stored under key into dest.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.redisClient.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// Set stores value as JSON with the given ttl.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, c.key(key), string(data), ttl).Err()
}

// Touch extends the ttl of an existing key.
func (c *CacheService) Touch(ctx context.Context, key string, ttl time.Duration) error {
	return c.redisClient.Expire(ctx, c.key(key), ttl).Err()
}
