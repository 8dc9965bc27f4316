package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
	dnderr "github.com/KirkDiggler/dnd-dpr-engine/internal/errors"
)

// Key pattern for cached results
const resultKeyPrefix = "dpr:result:"

// RedisConfig holds configuration for the Redis cache
type RedisConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration // how long results stay valid (default: 15 minutes)
}

// redisCache implements Cache using Redis, letting the server handle
// expiry and memory bounds
type redisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed cache
func NewRedis(cfg *RedisConfig) Cache {
	if cfg == nil {
		panic("RedisConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("redis client cannot be nil")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisCache{
		client: cfg.Client,
		ttl:    ttl,
	}
}

// key generates the Redis key for a cached result
func (c *redisCache) key(key string) string {
	return resultKeyPrefix + key
}

// Get retrieves a cached result by key
func (c *redisCache) Get(ctx context.Context, key string) (*combat.DPRResult, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("cache key is required")
	}

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, dnderr.NotFoundf("no cached result for key '%s'", key).
			WithMeta("key", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var result combat.DPRResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	return &result, nil
}

// Set stores a result with the configured TTL
func (c *redisCache) Set(ctx context.Context, key string, result *combat.DPRResult) error {
	if key == "" {
		return dnderr.InvalidArgument("cache key is required")
	}
	if result == nil {
		return dnderr.InvalidArgument("result cannot be nil")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}

	return nil
}

// Clear removes every cached result
func (c *redisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, resultKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cached result: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached results: %w", err)
	}

	return nil
}
