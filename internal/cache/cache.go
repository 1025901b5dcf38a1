// Package cache provides response caching for read-mostly upstream methods.
//
// Two backends are available:
//   - RedisBackend  — shared across replicas, recommended for clusters.
//   - MemoryBackend — in-process TTL cache, zero external dependencies.
//     Ideal for single-instance deployments or local development.
//
// Both implement the Backend interface so they are fully interchangeable.
// ResponseCache layers method-aware keying, per-method TTLs and eviction on
// top of whichever backend is configured.
package cache

import (
	"context"
	"time"
)

// Backend is a byte-oriented TTL store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
