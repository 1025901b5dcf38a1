// Package metrics provides a Prometheus metrics registry for the gateway.
//
// All metrics are scoped to a private registry (not the global default) so
// they don't interfere with host-level metrics when embedded in other
// applications. The /metrics HTTP handler is exposed via Handler().
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Registry holds all exported metrics.
type Registry struct {
	reg *prometheus.Registry

	// gateway_inflight_invocations
	inFlight prometheus.Gauge

	// gateway_requests_total{method,status}
	requestsTotal *prometheus.CounterVec

	// gateway_request_duration_seconds{method,cache}
	requestDuration *prometheus.HistogramVec

	// gateway_errors_total{method,category}
	errorsTotal *prometheus.CounterVec

	// gateway_retries_total{reason}
	retriesTotal *prometheus.CounterVec

	// gateway_rate_limit_hits_total{type}
	rateLimitHits *prometheus.CounterVec

	// gateway_upstream_attempts_total{method,outcome}
	upstreamAttempts *prometheus.CounterVec

	// gateway_upstream_attempt_duration_seconds{method,outcome}
	upstreamDuration *prometheus.HistogramVec

	// circuit_breaker_state — 0=closed, 1=open, 2=half-open
	circuitBreakerState prometheus.Gauge

	// gateway_circuit_breaker_trips_total
	cbTrips prometheus.Counter

	// gateway_circuit_breaker_rejections_total
	cbRejections prometheus.Counter

	// cache_hits_total / cache_misses_total
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// gateway_cache_operations_total{op,result}
	cacheOps *prometheus.CounterVec

	// gateway_cache_entries
	cacheEntries prometheus.Gauge

	// gateway_webhook_updates_total{result}
	webhookUpdates *prometheus.CounterVec

	// gateway_webhook_queue_depth
	webhookQueue prometheus.Gauge

	// gateway_tracked_chats
	trackedChats prometheus.Gauge

	// gateway_build_info{version}
	buildInfo *prometheus.GaugeVec

	cbMu        sync.Mutex
	lastCBState float64

	metricsHandler fasthttp.RequestHandler
}

func New() *Registry {
	reg := prometheus.NewRegistry()

	// Baseline runtime metrics even with a private registry.
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	r := &Registry{
		reg:         reg,
		lastCBState: -1,

		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_inflight_invocations",
			Help: "Current number of in-flight pipeline invocations",
		}),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_requests_total",
				Help: "Total pipeline invocations by method and outcome status",
			},
			[]string{"method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_request_duration_seconds",
				Help:    "End-to-end invocation duration in seconds (includes retries and backoff)",
				Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"method", "cache"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_errors_total",
				Help: "Failed invocations by method and error category",
			},
			[]string{"method", "category"},
		),

		retriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_retries_total",
				Help: "Retry attempts by trigger reason",
			},
			[]string{"reason"},
		),

		rateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_rate_limit_hits_total",
				Help: "Invocations refused by an internal rate limiter",
			},
			[]string{"type"},
		),

		upstreamAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_upstream_attempts_total",
				Help: "Upstream HTTP attempts (includes retries)",
			},
			[]string{"method", "outcome"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_upstream_attempt_duration_seconds",
				Help:    "Upstream HTTP attempt duration in seconds",
				Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"method", "outcome"},
		),

		circuitBreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed,1=open,2=half-open)",
		}),

		cbTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gateway_circuit_breaker_trips_total",
			Help: "Times the breaker transitioned to open",
		}),

		cbRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gateway_circuit_breaker_rejections_total",
			Help: "Invocations refused because the breaker was open",
		}),

		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits",
		}),

		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses",
		}),

		cacheOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_cache_operations_total",
				Help: "Cache operations by type and result",
			},
			[]string{"op", "result"},
		),

		cacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_cache_entries",
			Help: "Entries currently held in the response cache",
		}),

		webhookUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gateway_webhook_updates_total",
				Help: "Inbound webhook updates by acceptance result",
			},
			[]string{"result"},
		),

		webhookQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_webhook_queue_depth",
			Help: "Updates waiting in the webhook queue",
		}),

		trackedChats: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gateway_tracked_chats",
			Help: "Destinations currently tracked by the per-chat limiter",
		}),

		buildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gateway_build_info",
				Help: "Build information",
			},
			[]string{"version"},
		),
	}

	reg.MustRegister(
		r.inFlight,
		r.requestsTotal,
		r.requestDuration,
		r.errorsTotal,
		r.retriesTotal,
		r.rateLimitHits,
		r.upstreamAttempts,
		r.upstreamDuration,
		r.circuitBreakerState,
		r.cbTrips,
		r.cbRejections,
		r.cacheHits,
		r.cacheMisses,
		r.cacheOps,
		r.cacheEntries,
		r.webhookUpdates,
		r.webhookQueue,
		r.trackedChats,
		r.buildInfo,
	)

	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	r.metricsHandler = fasthttpadaptor.NewFastHTTPHandler(h)

	return r
}

func (r *Registry) IncInFlight() { r.inFlight.Inc() }
func (r *Registry) DecInFlight() { r.inFlight.Dec() }

// ObserveInvocation records one completed invocation.
func (r *Registry) ObserveInvocation(method string, errorCode int, cached bool, dur time.Duration) {
	status := "ok"
	if errorCode > 0 {
		status = strconv.Itoa(errorCode)
	}
	cache := "miss"
	if cached {
		cache = "hit"
	}
	r.requestsTotal.WithLabelValues(method, status).Inc()
	r.requestDuration.WithLabelValues(method, cache).Observe(dur.Seconds())
}

// RecordError counts a failed invocation under its category label.
func (r *Registry) RecordError(method, category string) {
	r.errorsTotal.WithLabelValues(method, category).Inc()
}

// RecordRetry counts one retry attempt. reason is one of rate_limit,
// server_error, timeout, network.
func (r *Registry) RecordRetry(reason string) {
	r.retriesTotal.WithLabelValues(reason).Inc()
}

// RecordRateLimitHit counts a limiter refusal; typ is "global" or "per_chat".
func (r *Registry) RecordRateLimitHit(typ string) {
	r.rateLimitHits.WithLabelValues(typ).Inc()
}

// ObserveUpstreamAttempt records one upstream HTTP attempt.
func (r *Registry) ObserveUpstreamAttempt(method, outcome string, dur time.Duration) {
	r.upstreamAttempts.WithLabelValues(method, outcome).Inc()
	r.upstreamDuration.WithLabelValues(method, outcome).Observe(dur.Seconds())
}

// SetCircuitBreaker sets the breaker state gauge and increments the trip
// counter when the state transitions to open (1).
func (r *Registry) SetCircuitBreaker(state int64) {
	r.circuitBreakerState.Set(float64(state))

	r.cbMu.Lock()
	if r.lastCBState != float64(state) {
		if state == 1 {
			r.cbTrips.Inc()
		}
		r.lastCBState = float64(state)
	}
	r.cbMu.Unlock()
}

// RecordCircuitBreakerRejection counts an admission refused by the breaker.
func (r *Registry) RecordCircuitBreakerRejection() {
	r.cbRejections.Inc()
}

func (r *Registry) CacheHit() {
	r.cacheHits.Inc()
	r.cacheOps.WithLabelValues("get", "hit").Inc()
}

func (r *Registry) CacheMiss() {
	r.cacheMisses.Inc()
	r.cacheOps.WithLabelValues("get", "miss").Inc()
}

func (r *Registry) CacheBypass() {
	r.cacheOps.WithLabelValues("get", "bypass").Inc()
}

func (r *Registry) CacheStore() {
	r.cacheOps.WithLabelValues("set", "ok").Inc()
}

func (r *Registry) SetCacheEntries(n int) {
	r.cacheEntries.Set(float64(n))
}

// RecordWebhookUpdate counts an inbound update; result is one of accepted,
// rejected, dropped.
func (r *Registry) RecordWebhookUpdate(result string) {
	r.webhookUpdates.WithLabelValues(result).Inc()
}

func (r *Registry) SetWebhookQueueDepth(n int) {
	r.webhookQueue.Set(float64(n))
}

func (r *Registry) SetTrackedChats(n int) {
	r.trackedChats.Set(float64(n))
}

func (r *Registry) SetBuildInfo(version string) {
	// Gauge is used so the time series always exists.
	r.buildInfo.WithLabelValues(version).Set(1)
}

func (r *Registry) Handler() fasthttp.RequestHandler {
	return r.metricsHandler
}

func (r *Registry) PromRegistry() *prometheus.Registry { return r.reg }
