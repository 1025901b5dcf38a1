package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nulpointcorp/bot-gateway/internal/breaker"
	"github.com/nulpointcorp/bot-gateway/internal/cache"
	"github.com/nulpointcorp/bot-gateway/internal/ratelimit"
	"github.com/nulpointcorp/bot-gateway/internal/schema"
	"github.com/nulpointcorp/bot-gateway/pkg/botapi"
)

// stubTransport replays a scripted sequence of outcomes and records calls.
type stubTransport struct {
	mu      sync.Mutex
	script  []stubReply
	calls   int
	methods []string
}

type stubReply struct {
	env *botapi.Envelope
	err error
}

func (s *stubTransport) Call(_ context.Context, method, _ string, _ []byte) (*botapi.Envelope, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	s.methods = append(s.methods, method)
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	r := s.script[i]
	return r.env, r.err
}

func (s *stubTransport) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// recordingSleeper collects requested delays without waiting.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return nil
}

type netError struct{}

func (netError) Error() string { return "dial tcp: connection refused" }

func okReply(result string) stubReply {
	return stubReply{env: botapi.Success(json.RawMessage(result))}
}

func errReply(code int, desc string) stubReply {
	return stubReply{env: botapi.Failure(code, desc)}
}

func transportErr() stubReply {
	return stubReply{err: netError{}}
}

type env struct {
	pipeline  *Pipeline
	transport *stubTransport
	sleeper   *recordingSleeper
	breaker   *breaker.Breaker
	cache     *cache.ResponseCache
	global    *ratelimit.GlobalLimiter
	perChat   *ratelimit.PerChatLimiter
}

type envOpt func(*Deps)

func withRetries(n int) envOpt {
	return func(d *Deps) { d.MaxRetries = n }
}

func withGlobalBudget(n int) envOpt {
	return func(d *Deps) { d.Global = ratelimit.NewGlobalLimiter(n) }
}

func newEnv(t *testing.T, script []stubReply, opts ...envOpt) *env {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	backend := cache.NewMemoryBackend(ctx)
	t.Cleanup(backend.Close)

	ttls := make(map[string]time.Duration)
	for _, d := range schema.All() {
		if d.Cacheable() {
			ttls[d.Name] = d.CacheTTL
		}
	}

	e := &env{
		transport: &stubTransport{script: script},
		sleeper:   &recordingSleeper{},
		breaker:   breaker.New(breaker.Config{}, nil),
		cache:     cache.NewResponseCache(backend, ttls),
		global:    ratelimit.NewGlobalLimiter(60),
		perChat:   ratelimit.NewPerChatLimiter(),
	}

	deps := Deps{
		Cache:      e.cache,
		Global:     e.global,
		PerChat:    e.perChat,
		Breaker:    e.breaker,
		Transport:  e.transport,
		MaxRetries: 0,
		Sleeper:    e.sleeper,
	}
	for _, o := range opts {
		o(&deps)
	}
	e.global = deps.Global
	e.pipeline = New(deps)
	return e
}

func TestCacheHitSkipsNetwork(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{"id":7}`)})
	ctx := context.Background()

	e.cache.Store(ctx, "getMe", map[string]any{}, []byte(`{"id":7}`))

	for i := 0; i < 2; i++ {
		env := e.pipeline.Invoke(ctx, "getMe", nil, Options{})
		if !env.OK {
			t.Fatalf("invocation %d failed: %+v", i, env)
		}
		if string(env.Result) != `{"id":7}` {
			t.Errorf("result = %s", env.Result)
		}
	}

	if e.transport.callCount() != 0 {
		t.Errorf("transport calls = %d, want 0", e.transport.callCount())
	}
	if e.global.InWindow() != 0 {
		t.Error("cache hit consumed global budget")
	}
}

func TestClientErrorNotRetried(t *testing.T) {
	e := newEnv(t, []stubReply{errReply(400, "Bad Request")}, withRetries(3))

	env := e.pipeline.Invoke(context.Background(), "sendMessage",
		map[string]any{"chat_id": float64(123), "text": "x"}, Options{})

	if env.OK || env.ErrorCode != 400 || env.Description != "Bad Request" {
		t.Errorf("envelope = %+v", env)
	}
	if e.transport.callCount() != 1 {
		t.Errorf("transport calls = %d, want 1", e.transport.callCount())
	}
	if e.breaker.State() != breaker.StateClosed {
		t.Error("client error moved the breaker")
	}
	if e.breaker.ConsecutiveFailures() != 0 {
		t.Errorf("consecutiveFailures = %d, want 0", e.breaker.ConsecutiveFailures())
	}
}

func TestBreakerOpensAfterFiveNetworkFailures(t *testing.T) {
	e := newEnv(t, []stubReply{transportErr()})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		env := e.pipeline.Invoke(ctx, "getMe", nil, Options{})
		if env.OK {
			t.Fatalf("invocation %d unexpectedly succeeded", i)
		}
	}

	if e.breaker.State() != breaker.StateOpen {
		t.Fatalf("breaker state = %v, want open", e.breaker.State())
	}

	before := e.transport.callCount()
	env := e.pipeline.Invoke(ctx, "getMe", nil, Options{})
	if env.ErrorCode != 503 {
		t.Errorf("error code = %d, want 503", env.ErrorCode)
	}
	if !strings.Contains(env.Description, "circuit breaker") {
		t.Errorf("description = %q", env.Description)
	}
	if e.transport.callCount() != before {
		t.Error("open breaker let a call through")
	}
	if botapi.Classify(env) != botapi.CategoryCircuitOpen {
		t.Errorf("category = %s", botapi.Classify(env))
	}
}

func TestPerChatPrivateLimit(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{}`)}, withGlobalBudget(60))
	ctx := context.Background()
	params := map[string]any{"chat_id": float64(12345), "text": "a"}

	if env := e.pipeline.Invoke(ctx, "sendMessage", params, Options{}); !env.OK {
		t.Fatalf("first send failed: %+v", env)
	}

	// 200 ms later: inside the 1 s gap.
	env := e.pipeline.Invoke(ctx, "sendMessage", params, Options{})
	if env.OK || env.ErrorCode != 429 {
		t.Fatalf("second send = %+v, want 429", env)
	}
	if !strings.Contains(env.Description, "Per-chat rate limit") {
		t.Errorf("description = %q", env.Description)
	}
	if env.RetryAfterSeconds() < 1 {
		t.Errorf("retry_after = %d, want >= 1", env.RetryAfterSeconds())
	}

	// After the gap the destination admits again.
	time.Sleep(1100 * time.Millisecond)
	if env := e.pipeline.Invoke(ctx, "sendMessage", params, Options{}); !env.OK {
		t.Fatalf("third send failed: %+v", env)
	}
}

func TestPerChatDestinationsIndependent(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{}`)})
	ctx := context.Background()

	env1 := e.pipeline.Invoke(ctx, "sendMessage",
		map[string]any{"chat_id": float64(111), "text": "a"}, Options{})
	env2 := e.pipeline.Invoke(ctx, "sendMessage",
		map[string]any{"chat_id": float64(222), "text": "b"}, Options{})

	if !env1.OK || !env2.OK {
		t.Errorf("envelopes = %+v / %+v", env1, env2)
	}
}

func TestRetryHonorsServerDelay(t *testing.T) {
	e := newEnv(t, []stubReply{
		{env: botapi.RateLimited("Too Many Requests", 2)},
		okReply(`{}`),
	}, withRetries(1))

	env := e.pipeline.Invoke(context.Background(), "sendMessage",
		map[string]any{"chat_id": float64(1), "text": "x"}, Options{})

	if !env.OK {
		t.Fatalf("envelope = %+v", env)
	}
	if e.transport.callCount() != 2 {
		t.Errorf("transport calls = %d, want 2", e.transport.callCount())
	}
	if len(e.sleeper.delays) != 1 || e.sleeper.delays[0] != 2*time.Second {
		t.Errorf("delays = %v, want [2s]", e.sleeper.delays)
	}
}

func TestRetryExponentialBackoff(t *testing.T) {
	e := newEnv(t, []stubReply{
		errReply(500, "Internal Server Error"),
		errReply(500, "Internal Server Error"),
		errReply(500, "Internal Server Error"),
		okReply(`{}`),
	}, withRetries(3))

	env := e.pipeline.Invoke(context.Background(), "getMe", nil, Options{})
	if !env.OK {
		t.Fatalf("envelope = %+v", env)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(e.sleeper.delays) != len(want) {
		t.Fatalf("delays = %v", e.sleeper.delays)
	}
	for i, d := range want {
		if e.sleeper.delays[i] != d {
			t.Errorf("delay[%d] = %v, want %v", i, e.sleeper.delays[i], d)
		}
	}
}

func TestRetriesConsumeGlobalBudget(t *testing.T) {
	e := newEnv(t, []stubReply{
		errReply(500, "boom"),
		errReply(500, "boom"),
		okReply(`{}`),
	}, withRetries(2), withGlobalBudget(60))

	e.pipeline.Invoke(context.Background(), "getMe", nil, Options{})

	if got := e.global.InWindow(); got != 3 {
		t.Errorf("global window = %d, want 3 (one per attempt)", got)
	}
}

func TestRetryBudgetExhausted(t *testing.T) {
	e := newEnv(t, []stubReply{errReply(502, "Bad Gateway")}, withRetries(2))

	env := e.pipeline.Invoke(context.Background(), "getMe", nil, Options{})
	if env.OK || env.ErrorCode != 502 {
		t.Errorf("envelope = %+v", env)
	}
	if e.transport.callCount() != 3 {
		t.Errorf("transport calls = %d, want 3 (1 + 2 retries)", e.transport.callCount())
	}
}

func TestGlobalLimitRefusal(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{}`)}, withGlobalBudget(1))
	ctx := context.Background()

	if env := e.pipeline.Invoke(ctx, "getChatMemberCount", map[string]any{"chat_id": float64(1)}, Options{}); !env.OK {
		t.Fatalf("first call failed: %+v", env)
	}

	env := e.pipeline.Invoke(ctx, "getChatMemberCount", map[string]any{"chat_id": float64(1)}, Options{})
	if env.OK || env.ErrorCode != 429 {
		t.Fatalf("envelope = %+v, want 429", env)
	}
	if !strings.Contains(env.Description, "Rate limit exceeded") {
		t.Errorf("description = %q", env.Description)
	}
	if env.RetryAfterSeconds() <= 0 || env.RetryAfterSeconds() > 60 {
		t.Errorf("retry_after = %d", env.RetryAfterSeconds())
	}
	if botapi.Classify(env) != botapi.CategoryRateLimited {
		t.Errorf("category = %s", botapi.Classify(env))
	}
}

func TestSkipGlobalLimit(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{}`)}, withGlobalBudget(1))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		env := e.pipeline.Invoke(ctx, "deleteWebhook", nil, Options{SkipGlobalLimit: true})
		if !env.OK {
			t.Fatalf("call %d refused despite SkipGlobalLimit: %+v", i, env)
		}
	}
	if e.global.InWindow() != 0 {
		t.Error("skipped calls consumed budget")
	}
}

func TestValidationShortCircuits(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{}`)})

	env := e.pipeline.Invoke(context.Background(), "sendMessage",
		map[string]any{"chat_id": float64(1)}, Options{})

	if env.OK {
		t.Fatal("invalid params accepted")
	}
	if !strings.HasPrefix(env.Description, "Validation failed") {
		t.Errorf("description = %q", env.Description)
	}
	if env.ErrorCode != 0 {
		t.Errorf("error code = %d, want unset", env.ErrorCode)
	}
	if e.transport.callCount() != 0 {
		t.Error("validation failure reached the transport")
	}
	if botapi.Classify(env) != botapi.CategoryValidation {
		t.Errorf("category = %s", botapi.Classify(env))
	}
}

func TestSuccessPopulatesCache(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{"id":42,"is_bot":true}`)})
	ctx := context.Background()

	if env := e.pipeline.Invoke(ctx, "getMe", nil, Options{}); !env.OK {
		t.Fatalf("first call failed: %+v", env)
	}
	env := e.pipeline.Invoke(ctx, "getMe", nil, Options{})
	if !env.OK || string(env.Result) != `{"id":42,"is_bot":true}` {
		t.Fatalf("second call = %+v", env)
	}
	if e.transport.callCount() != 1 {
		t.Errorf("transport calls = %d, want 1 (second served from cache)", e.transport.callCount())
	}
}

func TestUploadFailureReturns400(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{}`)})

	env := e.pipeline.Invoke(context.Background(), "sendPhoto",
		map[string]any{"chat_id": float64(1), "photo": "file:///nope/missing.png"}, Options{})

	if env.OK || env.ErrorCode != 400 {
		t.Fatalf("envelope = %+v, want 400", env)
	}
	if !strings.Contains(env.Description, "missing.png") {
		t.Errorf("description should name the path: %q", env.Description)
	}
	if e.transport.callCount() != 0 {
		t.Error("broken upload reached the transport")
	}
}

func TestTimeoutClassified(t *testing.T) {
	e := newEnv(t, []stubReply{{err: context.DeadlineExceeded}})

	env := e.pipeline.Invoke(context.Background(), "getMe", nil, Options{})
	if env.OK {
		t.Fatal("expected failure")
	}
	if botapi.Classify(env) != botapi.CategoryTimeout {
		t.Errorf("category = %s, want TIMEOUT", botapi.Classify(env))
	}
}

func TestUnknownMethodPassesThroughPipeline(t *testing.T) {
	e := newEnv(t, []stubReply{okReply(`{"done":true}`)})

	env := e.pipeline.Invoke(context.Background(), "brandNewMethod",
		map[string]any{"x": float64(1)}, Options{})
	if !env.OK {
		t.Fatalf("envelope = %+v", env)
	}
	if e.transport.methods[0] != "brandNewMethod" {
		t.Errorf("method = %q", e.transport.methods[0])
	}
}
