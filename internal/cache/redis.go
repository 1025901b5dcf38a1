package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultQueryTimeout = 500 * time.Millisecond

// RedisBackend stores entries in Redis.
//
// All operations degrade gracefully when Redis is unavailable:
//   - Get returns (nil, false) on any error.
//   - Set returns nil even on error; a dead cache must never fail a call.
//   - Delete returns the underlying error so callers can log it.
type RedisBackend struct {
	client       *redis.Client
	queryTimeout time.Duration
}

// NewRedisBackendFromClient wraps an existing Redis client. The caller owns
// the client lifecycle.
func NewRedisBackendFromClient(cli *redis.Client) *RedisBackend {
	return &RedisBackend{client: cli, queryTimeout: defaultQueryTimeout}
}

// NewRedisBackendFromURL parses redisURL, creates a client, verifies the
// connection with a PING, and returns the backend.
func NewRedisBackendFromURL(ctx context.Context, redisURL string) (*RedisBackend, error) {
	if ctx == nil {
		return nil, fmt.Errorf("cache: context must not be nil")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: parse url: %w", err)
	}

	cli := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := cli.Ping(pingCtx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}

	return &RedisBackend{client: cli, queryTimeout: defaultQueryTimeout}, nil
}

// Get retrieves the value for key. Returns (data, true) on a hit and
// (nil, false) on a miss or any error. Errors are logged at WARN level.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, b.queryTimeout)
	defer cancel()

	val, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "cache_get_error",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}

	return val, true
}

// Set stores value under key with the given TTL. Returns nil even on Redis
// error.
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, b.queryTimeout)
	defer cancel()

	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.WarnContext(ctx, "cache_set_error",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// Delete removes key from Redis.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, b.queryTimeout)
	defer cancel()

	if err := b.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: DEL %s: %w", key, err)
	}

	return nil
}

// Close releases the Redis connection pool.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
