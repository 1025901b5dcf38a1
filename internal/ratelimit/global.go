// Package ratelimit implements the two outbound pacing disciplines: a global
// sliding-window budget over all upstream calls, and per-destination pacing
// for message sends. Both are process-local and non-blocking: callers are
// told to wait, never made to.
package ratelimit

import (
	"sync"
	"time"
)

const (
	window = time.Minute

	// MinBudget and MaxBudget clamp the per-minute budget.
	MinBudget = 1
	MaxBudget = 60
	// DefaultBudget is the per-minute budget when none is configured.
	DefaultBudget = 30
)

// GlobalLimiter is a sliding one-minute window over all outbound calls.
//
// Admit and Record are split so the pipeline can refuse before doing any
// work, then consume budget immediately before each HTTP attempt (retries
// consume budget too).
type GlobalLimiter struct {
	mu      sync.Mutex
	budget  int
	history []time.Time

	now func() time.Time
}

// NewGlobalLimiter creates a limiter with the given per-minute budget,
// clamped to [MinBudget, MaxBudget].
func NewGlobalLimiter(budget int) *GlobalLimiter {
	if budget < MinBudget {
		budget = MinBudget
	}
	if budget > MaxBudget {
		budget = MaxBudget
	}
	return &GlobalLimiter{budget: budget, now: time.Now}
}

// Admit reports whether one more call fits the window. When refused, wait is
// how long until the oldest in-window instant ages out.
func (l *GlobalLimiter) Admit() (allowed bool, wait time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if len(l.history) < l.budget {
		return true, 0
	}

	wait = window - now.Sub(l.history[0])
	if wait < 0 {
		wait = 0
	}
	return false, wait
}

// Record appends the current instant to the window.
func (l *GlobalLimiter) Record() {
	l.mu.Lock()
	l.history = append(l.history, l.now())
	l.mu.Unlock()
}

// InWindow returns the number of calls inside the trailing minute.
func (l *GlobalLimiter) InWindow() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.evict(l.now())
	return len(l.history)
}

// Budget returns the configured per-minute budget.
func (l *GlobalLimiter) Budget() int { return l.budget }

// Saturated reports whether the window is at or over budget.
func (l *GlobalLimiter) Saturated() bool {
	return l.InWindow() >= l.budget
}

// evict drops instants older than the window. Caller holds the lock.
func (l *GlobalLimiter) evict(now time.Time) {
	cut := 0
	for cut < len(l.history) && now.Sub(l.history[cut]) >= window {
		cut++
	}
	if cut > 0 {
		l.history = append(l.history[:0], l.history[cut:]...)
	}
}
