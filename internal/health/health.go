// Package health derives the gateway's health from pipeline component state
// and serves the health, readiness, liveness and metrics endpoints.
//
// Health is never stored: every query reads the breaker and limiter at that
// instant.
package health

import (
	"time"

	"github.com/nulpointcorp/bot-gateway/internal/breaker"
	"github.com/nulpointcorp/bot-gateway/internal/cache"
	"github.com/nulpointcorp/bot-gateway/internal/ratelimit"
)

// Overall status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Snapshot is the JSON shape served on /health.
type Snapshot struct {
	Status        string         `json:"status"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Timestamp     time.Time      `json:"timestamp"`
	Checks        map[string]any `json:"checks"`
}

// Aggregator synthesises overall health from the breaker, the global
// limiter, and the response cache.
type Aggregator struct {
	breaker   *breaker.Breaker
	global    *ratelimit.GlobalLimiter
	perChat   *ratelimit.PerChatLimiter
	cache     *cache.ResponseCache
	startTime time.Time
}

// New creates an Aggregator. Any collaborator may be nil; its check is then
// omitted.
func New(b *breaker.Breaker, g *ratelimit.GlobalLimiter, pc *ratelimit.PerChatLimiter, c *cache.ResponseCache) *Aggregator {
	return &Aggregator{
		breaker:   b,
		global:    g,
		perChat:   pc,
		cache:     c,
		startTime: time.Now(),
	}
}

// Status computes the current snapshot.
//
//	breaker open                              → unhealthy
//	breaker half-open or limiter saturated    → degraded
//	otherwise                                 → healthy
func (a *Aggregator) Status() Snapshot {
	overall := StatusHealthy
	checks := make(map[string]any)

	if a.breaker != nil {
		state := a.breaker.State()
		checks["circuit_breaker"] = state.Label()
		switch state {
		case breaker.StateOpen:
			overall = StatusUnhealthy
		case breaker.StateHalfOpen:
			overall = StatusDegraded
		}
	}

	if a.global != nil {
		saturated := a.global.Saturated()
		checks["rate_limiter"] = map[string]any{
			"in_window": a.global.InWindow(),
			"budget":    a.global.Budget(),
			"saturated": saturated,
		}
		if saturated && overall == StatusHealthy {
			overall = StatusDegraded
		}
	}

	if a.perChat != nil {
		checks["tracked_chats"] = a.perChat.Tracked()
	}

	if a.cache != nil {
		stats := a.cache.Stats()
		checks["cache"] = map[string]any{
			"entries":   stats.Size,
			"by_method": stats.ByMethod,
		}
	}

	return Snapshot{
		Status:        overall,
		UptimeSeconds: int64(time.Since(a.startTime).Seconds()),
		Timestamp:     time.Now().UTC(),
		Checks:        checks,
	}
}

// Ready reports readiness: false only while the breaker is open.
func (a *Aggregator) Ready() bool {
	return a.breaker == nil || a.breaker.State() != breaker.StateOpen
}

// Live reports liveness. The process serving the request is alive by
// definition; this hook exists for future dependency checks.
func (a *Aggregator) Live() bool {
	return true
}
