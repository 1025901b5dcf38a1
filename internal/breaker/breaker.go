// Package breaker implements the three-state circuit breaker that guards the
// single upstream endpoint.
package breaker

import (
	"sync"
	"time"

	"github.com/nulpointcorp/bot-gateway/internal/metrics"
)

// State represents the operational state of the breaker.
//
//	StateClosed   — normal operation; all requests pass through.
//	StateOpen     — upstream is failing; requests are rejected immediately.
//	StateHalfOpen — recovery probing; requests are allowed to test the upstream.
type State int

const (
	StateClosed   State = 0
	StateOpen     State = 1
	StateHalfOpen State = 2
)

// Label returns the metric label for a state: "closed", "open", "half_open".
func (s State) Label() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

const (
	// DefaultFailureThreshold opens the breaker after this many consecutive
	// qualifying failures.
	DefaultFailureThreshold = 5
	// DefaultOpenTimeout is how long the breaker stays open before probing.
	DefaultOpenTimeout = 30 * time.Second
)

// Config holds breaker tuning parameters. Zero values fall back to the
// package defaults.
type Config struct {
	FailureThreshold int
	OpenTimeout      time.Duration
}

func (c *Config) failureThreshold() int {
	if c.FailureThreshold > 0 {
		return c.FailureThreshold
	}
	return DefaultFailureThreshold
}

func (c *Config) openTimeout() time.Duration {
	if c.OpenTimeout > 0 {
		return c.OpenTimeout
	}
	return DefaultOpenTimeout
}

// Breaker is safe for concurrent use. The lock is never held across an HTTP
// exchange; Allow, OnSuccess and OnFailure each take it briefly. In half-open
// state concurrent probes are admitted optimistically; the first success
// closes the breaker and duplicate probes are harmless.
type Breaker struct {
	mu sync.Mutex

	state               State
	consecutiveFailures int
	openedAt            time.Time

	cfg     Config
	metrics *metrics.Registry

	now func() time.Time
}

// New creates a closed Breaker. metrics may be nil.
func New(cfg Config, reg *metrics.Registry) *Breaker {
	b := &Breaker{
		state:   StateClosed,
		cfg:     cfg,
		metrics: reg,
		now:     time.Now,
	}
	b.publishState()
	return b
}

// Allow reports whether the next request may proceed, together with the
// state observed at admission time.
//
//   - Closed   → always true.
//   - Open     → false, unless the open timeout has elapsed, in which case the
//     breaker transitions to HalfOpen and admits the probe.
//   - HalfOpen → true.
func (b *Breaker) Allow() (bool, State) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true, StateClosed

	case StateOpen:
		if b.now().Sub(b.openedAt) >= b.cfg.openTimeout() {
			b.state = StateHalfOpen
			b.publishState()
			return true, StateHalfOpen
		}
		if b.metrics != nil {
			b.metrics.RecordCircuitBreakerRejection()
		}
		return false, StateOpen

	default: // StateHalfOpen
		return true, StateHalfOpen
	}
}

// OnSuccess resets the breaker to Closed regardless of its previous state.
func (b *Breaker) OnSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures = 0
	if b.state != StateClosed {
		b.state = StateClosed
		b.publishState()
	}
}

// OnFailure records the outcome of a failed request. Only qualifying
// failures count: transport errors (errorCode 0) and upstream 5xx. Client
// errors and 429s leave the breaker untouched.
func (b *Breaker) OnFailure(errorCode int) {
	if !Qualifying(errorCode) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveFailures++

	switch b.state {
	case StateHalfOpen:
		// A failed probe reopens immediately.
		b.trip()
	case StateClosed:
		if b.consecutiveFailures >= b.cfg.failureThreshold() {
			b.trip()
		}
	}
}

// Qualifying reports whether a failure outcome contributes to the
// consecutive-failure count.
func Qualifying(errorCode int) bool {
	return errorCode == 0 || errorCode >= 500
}

// State returns the current state without side effects.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// ConsecutiveFailures returns the current qualifying-failure streak.
func (b *Breaker) ConsecutiveFailures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutiveFailures
}

// trip opens the breaker. Caller holds the lock.
func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.publishState()
}

// publishState mirrors the state into the metrics gauge. Caller holds the
// lock.
func (b *Breaker) publishState() {
	if b.metrics != nil {
		b.metrics.SetCircuitBreaker(int64(b.state))
	}
}
