package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis server at url
// (redis://[user:pass@]host:port/db) and verifies the connection with PING.
// Connection failures are retried with backoff.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	err = RetryWithBackoff(ctx, func() error {
		return classify(client.Ping(ctx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, classify(err)
	}
	return data, true, nil
}

// Set stores a value in Redis.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return classify(c.client.Set(ctx, key, data, ttl).Err())
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, key).Err())
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks connection-level failures as retryable network errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, redis.ErrClosed) {
		return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	return err
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
