package cache

import (
	"context"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttls map[string]time.Duration) *ResponseCache {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	backend := NewMemoryBackend(ctx)
	t.Cleanup(backend.Close)
	return NewResponseCache(backend, ttls)
}

func TestKeyStableUnderFieldOrder(t *testing.T) {
	a := Key("getChat", map[string]any{"chat_id": float64(1), "extra": "x"})
	b := Key("getChat", map[string]any{"extra": "x", "chat_id": float64(1)})
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if a == Key("getChat", map[string]any{"chat_id": float64(2), "extra": "x"}) {
		t.Error("different params should produce different keys")
	}
}

func TestKeyEmptyParams(t *testing.T) {
	if got := Key("getMe", nil); got != "getMe:{}" {
		t.Errorf("Key(getMe, nil) = %q", got)
	}
}

func TestStoreAndLookup(t *testing.T) {
	c := newTestCache(t, map[string]time.Duration{"getMe": time.Minute})
	ctx := context.Background()

	c.Store(ctx, "getMe", nil, []byte(`{"id":7}`))
	got, ok := c.Lookup(ctx, "getMe", nil)
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != `{"id":7}` {
		t.Errorf("value = %s", got)
	}
}

func TestStoreIgnoredForUnregisteredMethod(t *testing.T) {
	c := newTestCache(t, map[string]time.Duration{"getMe": time.Minute})
	ctx := context.Background()

	c.Store(ctx, "sendMessage", map[string]any{"chat_id": float64(1)}, []byte("x"))
	if _, ok := c.Lookup(ctx, "sendMessage", map[string]any{"chat_id": float64(1)}); ok {
		t.Error("uncacheable method should never hit")
	}
	if s := c.Stats(); s.Size != 0 {
		t.Errorf("stats size = %d, want 0", s.Size)
	}
}

func TestExpiry(t *testing.T) {
	c := newTestCache(t, map[string]time.Duration{"getMe": 30 * time.Millisecond})
	ctx := context.Background()

	c.Store(ctx, "getMe", nil, []byte("v"))
	if _, ok := c.Lookup(ctx, "getMe", nil); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Lookup(ctx, "getMe", nil); ok {
		t.Fatal("expected miss after expiry")
	}
	if s := c.Stats(); s.Size != 0 {
		t.Errorf("expired entry still counted: %+v", s)
	}
}

func TestEvictMethodLeavesOthers(t *testing.T) {
	c := newTestCache(t, map[string]time.Duration{
		"getChat":       time.Minute,
		"getStickerSet": time.Minute,
	})
	ctx := context.Background()

	c.Store(ctx, "getChat", map[string]any{"chat_id": float64(1)}, []byte("a"))
	c.Store(ctx, "getChat", map[string]any{"chat_id": float64(2)}, []byte("b"))
	c.Store(ctx, "getStickerSet", map[string]any{"name": "s"}, []byte("c"))

	c.EvictMethod(ctx, "getChat")

	if _, ok := c.Lookup(ctx, "getChat", map[string]any{"chat_id": float64(1)}); ok {
		t.Error("getChat entry survived eviction")
	}
	if _, ok := c.Lookup(ctx, "getStickerSet", map[string]any{"name": "s"}); !ok {
		t.Error("getStickerSet entry was evicted")
	}

	s := c.Stats()
	if s.Size != 1 || s.ByMethod["getStickerSet"] != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestClearIdempotent(t *testing.T) {
	c := newTestCache(t, map[string]time.Duration{"getMe": time.Minute})
	ctx := context.Background()

	c.Store(ctx, "getMe", nil, []byte("v"))
	c.Clear(ctx)
	c.Clear(ctx)

	if _, ok := c.Lookup(ctx, "getMe", nil); ok {
		t.Error("entry survived clear")
	}
	if s := c.Stats(); s.Size != 0 {
		t.Errorf("stats after clear = %+v", s)
	}
}

func TestMemoryBackendLazyExpiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := NewMemoryBackend(ctx)
	defer b.Close()

	_ = b.Set(ctx, "k", []byte("v"), 20*time.Millisecond)
	if _, ok := b.Get(ctx, "k"); !ok {
		t.Fatal("expected hit")
	}
	time.Sleep(40 * time.Millisecond)
	if _, ok := b.Get(ctx, "k"); ok {
		t.Fatal("expected expiry")
	}
	if b.Len() != 0 {
		t.Errorf("lazy expiry should have removed the entry, len=%d", b.Len())
	}
}
