package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Stats describes the cache population.
type Stats struct {
	Size     int            `json:"size"`
	ByMethod map[string]int `json:"by_method"`
}

// ResponseCache caches upstream replies per method. TTLs are registered up
// front; Store for a method without a TTL is a no-op. The cache keeps a
// method → keys index beside the backend so whole methods can be evicted and
// counted, which byte stores cannot do on their own.
type ResponseCache struct {
	backend Backend
	ttls    map[string]time.Duration

	mu    sync.Mutex
	index map[string]map[string]time.Time // method → key → expiry
}

// NewResponseCache builds a ResponseCache over backend with the given
// per-method TTL registry.
func NewResponseCache(backend Backend, ttls map[string]time.Duration) *ResponseCache {
	reg := make(map[string]time.Duration, len(ttls))
	for m, ttl := range ttls {
		if ttl > 0 {
			reg[m] = ttl
		}
	}
	return &ResponseCache{
		backend: backend,
		ttls:    reg,
		index:   make(map[string]map[string]time.Time),
	}
}

// Cacheable reports whether method has a registered TTL.
func (c *ResponseCache) Cacheable(method string) bool {
	_, ok := c.ttls[method]
	return ok
}

// TTL returns the registered TTL for method, zero if none.
func (c *ResponseCache) TTL(method string) time.Duration {
	return c.ttls[method]
}

// Key builds the canonical cache key for one invocation. encoding/json sorts
// map keys, so logically equal parameter objects produce identical keys
// regardless of field order.
func Key(method string, params map[string]any) string {
	if len(params) == 0 {
		return method + ":{}"
	}
	b, err := json.Marshal(params)
	if err != nil {
		// Unmarshalable params cannot have come off the wire; never cache.
		return method + ":!" + err.Error()
	}
	return method + ":" + string(b)
}

// Lookup returns the cached reply for (method, params), or (nil, false).
func (c *ResponseCache) Lookup(ctx context.Context, method string, params map[string]any) ([]byte, bool) {
	if !c.Cacheable(method) {
		return nil, false
	}
	key := Key(method, params)
	val, ok := c.backend.Get(ctx, key)
	if !ok {
		c.unindex(method, key)
		return nil, false
	}
	return val, true
}

// Store caches a reply under the method's registered TTL. Methods without a
// TTL are ignored.
func (c *ResponseCache) Store(ctx context.Context, method string, params map[string]any, value []byte) {
	ttl, ok := c.ttls[method]
	if !ok {
		return
	}
	key := Key(method, params)
	if err := c.backend.Set(ctx, key, value, ttl); err != nil {
		return
	}

	c.mu.Lock()
	keys, ok := c.index[method]
	if !ok {
		keys = make(map[string]time.Time)
		c.index[method] = keys
	}
	keys[key] = time.Now().Add(ttl)
	c.mu.Unlock()
}

// EvictMethod drops every cached entry of one method, leaving others intact.
func (c *ResponseCache) EvictMethod(ctx context.Context, method string) {
	c.mu.Lock()
	keys := c.index[method]
	delete(c.index, method)
	c.mu.Unlock()

	for key := range keys {
		_ = c.backend.Delete(ctx, key)
	}
}

// Clear drops every cached entry. Idempotent.
func (c *ResponseCache) Clear(ctx context.Context) {
	c.mu.Lock()
	index := c.index
	c.index = make(map[string]map[string]time.Time)
	c.mu.Unlock()

	for _, keys := range index {
		for key := range keys {
			_ = c.backend.Delete(ctx, key)
		}
	}
}

// Stats returns entry counts per method, excluding entries whose TTL has
// lapsed.
func (c *ResponseCache) Stats() Stats {
	now := time.Now()
	s := Stats{ByMethod: make(map[string]int)}

	c.mu.Lock()
	defer c.mu.Unlock()

	for method, keys := range c.index {
		for key, exp := range keys {
			if now.After(exp) {
				delete(keys, key)
				continue
			}
			s.ByMethod[method]++
			s.Size++
		}
		if len(keys) == 0 {
			delete(c.index, method)
		}
	}
	return s
}

func (c *ResponseCache) unindex(method, key string) {
	c.mu.Lock()
	if keys, ok := c.index[method]; ok {
		delete(keys, key)
	}
	c.mu.Unlock()
}
