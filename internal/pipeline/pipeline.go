// Package pipeline drives one invocation through the full resilience stack:
// validation, cache probe, breaker admission, global and per-destination rate
// limiting, upload encoding, the retried HTTP exchange, and post-processing.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nulpointcorp/bot-gateway/internal/breaker"
	"github.com/nulpointcorp/bot-gateway/internal/cache"
	"github.com/nulpointcorp/bot-gateway/internal/logger"
	"github.com/nulpointcorp/bot-gateway/internal/metrics"
	"github.com/nulpointcorp/bot-gateway/internal/ratelimit"
	"github.com/nulpointcorp/bot-gateway/internal/schema"
	"github.com/nulpointcorp/bot-gateway/internal/upload"
	"github.com/nulpointcorp/bot-gateway/internal/upstream"
	"github.com/nulpointcorp/bot-gateway/internal/validate"
	"github.com/nulpointcorp/bot-gateway/pkg/botapi"
)

const (
	// DefaultTimeout caps one HTTP attempt when the invocation carries none.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the retry budget when the invocation carries none.
	DefaultMaxRetries = 3
	// maxBackoff caps the exponential retry delay.
	maxBackoff = 30 * time.Second
)

// Transport performs one HTTP exchange with the upstream platform.
// *upstream.Client is the production implementation; tests substitute stubs.
type Transport interface {
	Call(ctx context.Context, method, contentType string, body []byte) (*botapi.Envelope, error)
}

var _ Transport = (*upstream.Client)(nil)

// Sleeper abstracts backoff delays so tests can run without wall-clock
// waits. Sleep returns early with the context error on cancellation.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type clockSleeper struct{}

func (clockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Options adjusts one invocation.
type Options struct {
	// SkipGlobalLimit exempts the call from the global budget. Used for the
	// gateway's own startup and shutdown calls.
	SkipGlobalLimit bool
	// Timeout overrides the per-attempt HTTP timeout when positive.
	Timeout time.Duration
	// MaxRetries overrides the retry budget when non-nil.
	MaxRetries *int
}

// Deps collects the pipeline's collaborators. Metrics and InvocationLog may
// be nil.
type Deps struct {
	Cache     *cache.ResponseCache
	Global    *ratelimit.GlobalLimiter
	PerChat   *ratelimit.PerChatLimiter
	Breaker   *breaker.Breaker
	Metrics   *metrics.Registry
	Transport Transport
	Log       *slog.Logger
	InvLog    *logger.Logger

	Timeout    time.Duration
	MaxRetries int
	Sleeper    Sleeper
}

// Pipeline is safe for concurrent use; it is the sole serialisation point
// for limiter and breaker state.
type Pipeline struct {
	cache     *cache.ResponseCache
	global    *ratelimit.GlobalLimiter
	perChat   *ratelimit.PerChatLimiter
	breaker   *breaker.Breaker
	metrics   *metrics.Registry
	transport Transport
	log       *slog.Logger
	invLog    *logger.Logger

	timeout    time.Duration
	maxRetries int
	sleeper    Sleeper
}

// New wires a Pipeline from its dependencies.
func New(d Deps) *Pipeline {
	if d.Timeout <= 0 {
		d.Timeout = DefaultTimeout
	}
	if d.MaxRetries < 0 {
		d.MaxRetries = DefaultMaxRetries
	}
	if d.Sleeper == nil {
		d.Sleeper = clockSleeper{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	return &Pipeline{
		cache:      d.Cache,
		global:     d.Global,
		perChat:    d.PerChat,
		breaker:    d.Breaker,
		metrics:    d.Metrics,
		transport:  d.Transport,
		log:        d.Log,
		invLog:     d.InvLog,
		timeout:    d.Timeout,
		maxRetries: d.MaxRetries,
		sleeper:    d.Sleeper,
	}
}

// Invoke runs one method call through the stack. It always returns an
// envelope; failures never escape as errors or panics.
func (p *Pipeline) Invoke(ctx context.Context, method string, params map[string]any, opts Options) (env *botapi.Envelope) {
	start := time.Now()
	if p.metrics != nil {
		p.metrics.IncInFlight()
		defer p.metrics.DecInFlight()
	}

	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorContext(ctx, "invocation_panic",
				slog.String("method", method),
				slog.Any("panic", r),
			)
			env = botapi.Failure(500, "Internal gateway error")
		}
		p.finish(ctx, method, env, start)
	}()

	env, cached := p.run(ctx, method, params, opts)
	if cached {
		// Flag the cache path for the duration histogram.
		env = env.WithCached()
	}
	return env
}

// run executes the ordered stages and returns the final envelope plus
// whether it came from cache.
func (p *Pipeline) run(ctx context.Context, method string, params map[string]any, opts Options) (*botapi.Envelope, bool) {
	if params == nil {
		params = map[string]any{}
	}

	// Stage 1: validation.
	validated, err := validate.Method(method, params)
	if err != nil {
		return botapi.Failure(0, err.Error()), false
	}

	// Stage 2: cache probe. A hit bypasses every downstream stage.
	if p.cache != nil {
		if raw, ok := p.cache.Lookup(ctx, method, validated); ok {
			if p.metrics != nil {
				p.metrics.CacheHit()
			}
			return botapi.Success(json.RawMessage(raw)), true
		}
		if p.cache.Cacheable(method) && p.metrics != nil {
			p.metrics.CacheMiss()
		} else if p.metrics != nil {
			p.metrics.CacheBypass()
		}
	}

	// Stage 3: breaker admission.
	if p.breaker != nil {
		if allowed, _ := p.breaker.Allow(); !allowed {
			return botapi.Failure(503, "Service unavailable: circuit breaker open"), false
		}
	}

	// Stage 4: global budget.
	if p.global != nil && !opts.SkipGlobalLimit {
		if allowed, wait := p.global.Admit(); !allowed {
			if p.metrics != nil {
				p.metrics.RecordRateLimitHit("global")
			}
			secs := ceilSeconds(wait)
			return botapi.RateLimited(
				fmt.Sprintf("Rate limit exceeded. Wait %d seconds.", secs), secs), false
		}
	}

	// Stage 5: per-destination pacing.
	desc, _ := schema.Get(method)
	destID, hasDest := destinationID(desc, validated)
	if p.perChat != nil && hasDest {
		if allowed, wait := p.perChat.AdmitFor(destID); !allowed {
			if p.metrics != nil {
				p.metrics.RecordRateLimitHit("per_chat")
			}
			secs := ceilSeconds(wait)
			return botapi.RateLimited(
				fmt.Sprintf("Per-chat rate limit exceeded. Wait %d seconds.", secs), secs), false
		}
	}

	// Stage 6: upload encoding.
	prepared, err := upload.Prepare(desc, validated)
	if err != nil {
		return botapi.Failure(400, err.Error()), false
	}

	// Stage 7: the retried exchange.
	env := p.exchange(ctx, method, prepared, opts)

	// Stages 8-9: post-processing.
	if env.OK {
		if p.breaker != nil {
			p.breaker.OnSuccess()
		}
		if p.cache != nil && env.Result != nil {
			p.cache.Store(ctx, method, validated, env.Result)
			if p.metrics != nil && p.cache.Cacheable(method) {
				p.metrics.CacheStore()
			}
		}
		if p.perChat != nil && hasDest {
			p.perChat.RecordFor(destID)
			if p.metrics != nil {
				p.metrics.SetTrackedChats(p.perChat.Tracked())
			}
		}
	} else if p.breaker != nil {
		p.breaker.OnFailure(env.ErrorCode)
	}

	return env, false
}

// exchange runs the attempt loop: at most 1+maxRetries transport calls with
// classified backoff between them.
func (p *Pipeline) exchange(ctx context.Context, method string, prepared *upload.Prepared, opts Options) *botapi.Envelope {
	timeout := p.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	retries := p.maxRetries
	if opts.MaxRetries != nil && *opts.MaxRetries >= 0 {
		retries = *opts.MaxRetries
	}

	var env *botapi.Envelope
	for attempt := 0; ; attempt++ {
		if p.global != nil && !opts.SkipGlobalLimit {
			// Budget is consumed per attempt; retries count too.
			p.global.Record()
		}

		env = p.attempt(ctx, method, prepared, timeout)
		if env.OK {
			return env
		}

		reason, retriable := retryReason(env)
		if !retriable || attempt >= retries {
			return env
		}
		if ctx.Err() != nil {
			return env
		}

		if p.metrics != nil {
			p.metrics.RecordRetry(reason)
		}

		delay := backoff(attempt, env)
		p.log.DebugContext(ctx, "retrying",
			slog.String("method", method),
			slog.Int("attempt", attempt+1),
			slog.String("reason", reason),
			slog.Duration("delay", delay),
		)
		if err := p.sleeper.Sleep(ctx, delay); err != nil {
			return botapi.Failure(0, "request cancelled during retry backoff: timeout")
		}
	}
}

// attempt performs a single transport call under its own deadline.
func (p *Pipeline) attempt(ctx context.Context, method string, prepared *upload.Prepared, timeout time.Duration) *botapi.Envelope {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	env, err := p.transport.Call(attemptCtx, method, prepared.ContentType, prepared.Body)
	dur := time.Since(start)

	switch {
	case err == nil && env.OK:
		p.observeAttempt(method, "ok", dur)
		return env
	case err == nil:
		p.observeAttempt(method, "upstream_error", dur)
		return env
	case errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() != nil:
		p.observeAttempt(method, "timeout", dur)
		return botapi.Failuref(0, "request timeout after %s", timeout)
	default:
		p.observeAttempt(method, "network_error", dur)
		return botapi.Failure(0, logger.RedactString(err.Error()))
	}
}

func (p *Pipeline) observeAttempt(method, outcome string, dur time.Duration) {
	if p.metrics != nil {
		p.metrics.ObserveUpstreamAttempt(method, outcome, dur)
	}
}

// finish emits the per-invocation metrics and the async invocation log.
func (p *Pipeline) finish(ctx context.Context, method string, env *botapi.Envelope, start time.Time) {
	if env == nil {
		return
	}
	dur := time.Since(start)

	category := ""
	if !env.OK {
		category = string(botapi.Classify(env))
		if p.metrics != nil {
			p.metrics.RecordError(method, category)
		}
	}
	if p.metrics != nil {
		p.metrics.ObserveInvocation(method, env.ErrorCode, env.Cached(), dur)
	}
	if p.invLog != nil {
		p.invLog.Log(logger.InvocationLog{
			ID:        uuid.New(),
			Method:    method,
			OK:        env.OK,
			ErrorCode: env.ErrorCode,
			Category:  category,
			LatencyMs: dur.Milliseconds(),
			Cached:    env.Cached(),
			CreatedAt: start,
		})
	}
	if !env.OK {
		p.log.WarnContext(ctx, "invocation_failed",
			slog.String("method", method),
			slog.Int("error_code", env.ErrorCode),
			slog.String("category", category),
			slog.String("description", logger.RedactString(env.Description)),
		)
	}
}

// retryReason classifies a failed envelope for the retry decision.
func retryReason(env *botapi.Envelope) (string, bool) {
	switch {
	case env.ErrorCode == 429:
		return "rate_limit", true
	case env.ErrorCode >= 500:
		return "server_error", true
	case env.ErrorCode == 0:
		if botapi.Classify(env) == botapi.CategoryTimeout {
			return "timeout", true
		}
		return "network", true
	default:
		return "", false
	}
}

// backoff returns the delay before retry attempt+1: the server-supplied
// retry_after when present, otherwise exponential from 1 s capped at 30 s.
func backoff(attempt int, env *botapi.Envelope) time.Duration {
	if s := env.RetryAfterSeconds(); s > 0 {
		return time.Duration(s) * time.Second
	}
	d := time.Second * time.Duration(math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// destinationID extracts the chat identifier for per-destination pacing.
// Only destination-scoped methods that actually carry chat_id are paced.
func destinationID(d *schema.Descriptor, params map[string]any) (string, bool) {
	if d == nil || !d.DestScoped {
		return "", false
	}
	val, ok := params["chat_id"]
	if !ok {
		return "", false
	}
	switch t := val.(type) {
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatInt(int64(t), 10), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
