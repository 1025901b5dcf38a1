package cache

import (
	"context"
	"sync"
	"time"
)

// memItem stores a cached value together with its expiry time.
type memItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryBackend is a simple in-process store with per-entry TTL.
//
// It is safe for concurrent use. A background goroutine periodically removes
// expired entries to prevent unbounded memory growth. Use this backend when
// Redis is not available; for multi-replica deployments use RedisBackend so
// all replicas observe the same entries.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]memItem

	done chan struct{}
}

// NewMemoryBackend creates a MemoryBackend and starts the background cleanup
// loop. The cleanup goroutine stops when ctx is cancelled or Close is called.
func NewMemoryBackend(ctx context.Context) *MemoryBackend {
	b := &MemoryBackend{
		items: make(map[string]memItem),
		done:  make(chan struct{}),
	}
	go b.cleanup(ctx)
	return b
}

// Get returns the value for key. Returns (nil, false) on a miss or if the
// entry has expired. Expired entries are removed lazily on access.
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool) {
	b.mu.RLock()
	item, ok := b.items[key]
	b.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(item.expiresAt) {
		b.mu.Lock()
		delete(b.items, key)
		b.mu.Unlock()
		return nil, false
	}

	return item.data, true
}

// Set stores value under key for the duration of ttl.
// A zero or negative ttl is treated as a 1-hour TTL.
func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}

	b.mu.Lock()
	b.items[key] = memItem{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	b.mu.Unlock()

	return nil
}

// Delete removes key. Returns nil if the key did not exist.
func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.items, key)
	b.mu.Unlock()
	return nil
}

// Len returns the number of entries currently held (including entries that
// may have expired but not yet been evicted).
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Close stops the background cleanup goroutine.
func (b *MemoryBackend) Close() {
	close(b.done)
}

func (b *MemoryBackend) cleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.evictExpired()
		case <-ctx.Done():
			return
		case <-b.done:
			return
		}
	}
}

func (b *MemoryBackend) evictExpired() {
	now := time.Now()

	b.mu.Lock()
	for k, v := range b.items {
		if now.After(v.expiresAt) {
			delete(b.items, k)
		}
	}
	b.mu.Unlock()
}
