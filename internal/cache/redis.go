package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"example.com/volunteerhub/config"
	"example.com/volunteerhub/internal/models"
)

// ErrMiss is returned on a cache miss or when caching is disabled; callers
// fall back to the store.
var ErrMiss = errors.New("cache miss")

// RedisCache provides caching using Redis
type RedisCache struct {
	client  *redis.Client
	enabled bool
}

// NewRedisCache creates a new Redis cache. With caching disabled in config
// the returned cache misses on every read and drops every write.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if !cfg.Enabled {
		return &RedisCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &RedisCache{client: client, enabled: true}, nil
}

// Disabled returns a cache that never hits. Useful in tests and when Redis
// is unavailable.
func Disabled() *RedisCache {
	return &RedisCache{enabled: false}
}

// Get retrieves a JSON-encoded value from cache into value.
func (c *RedisCache) Get(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrMiss
		}
		return errors.Wrap(err, "failed to get value from Redis")
	}

	if err := json.Unmarshal(data, value); err != nil {
		return errors.Wrap(err, "failed to unmarshal cached value")
	}
	return nil
}

// Set stores a JSON-encoded value in cache with an expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !c.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal value for caching")
	}

	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return errors.Wrap(err, "failed to set value in Redis")
	}
	return nil
}

// Delete removes a key. Used to invalidate listings after writes.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if !c.enabled {
		return nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete key from Redis")
	}
	return nil
}

// EventsCacheKey is the key for the full event candidate list.
func EventsCacheKey() string {
	return "events:all"
}

// UserEventsCacheKey generates a cache key for a user's event list.
func UserEventsCacheKey(id models.UserID) string {
	return fmt.Sprintf("user-events:%s", id.String())
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if !c.enabled || c.client == nil {
		return nil
	}
	return c.client.Close()
}
