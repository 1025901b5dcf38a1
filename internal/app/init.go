package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nulpointcorp/bot-gateway/internal/breaker"
	"github.com/nulpointcorp/bot-gateway/internal/cache"
	"github.com/nulpointcorp/bot-gateway/internal/config"
	"github.com/nulpointcorp/bot-gateway/internal/health"
	"github.com/nulpointcorp/bot-gateway/internal/logger"
	"github.com/nulpointcorp/bot-gateway/internal/mcp"
	"github.com/nulpointcorp/bot-gateway/internal/metrics"
	"github.com/nulpointcorp/bot-gateway/internal/pipeline"
	"github.com/nulpointcorp/bot-gateway/internal/ratelimit"
	"github.com/nulpointcorp/bot-gateway/internal/schema"
	"github.com/nulpointcorp/bot-gateway/internal/upstream"
	"github.com/nulpointcorp/bot-gateway/internal/webhook"
)

// initInfra establishes optional external connections.
// Redis is only required when CACHE_MODE=redis.
func (a *App) initInfra(ctx context.Context) error {
	if a.cfg.Cache.Mode == "redis" {
		a.log.Info("connecting to redis", slog.String("url", config.MaskURL(a.cfg.Redis.URL)))

		rdb, err := connectRedis(ctx, a.cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		a.rdb = rdb
		a.log.Info("redis connected")
	}

	return nil
}

// initServices creates the metrics registry, the response cache, the rate
// limiters, the circuit breaker, and the async invocation logger.
func (a *App) initServices(ctx context.Context) error {
	a.prom = metrics.New()
	a.prom.SetBuildInfo(a.version)

	var backend cache.Backend
	switch a.cfg.Cache.Mode {
	case "redis":
		backend = cache.NewRedisBackendFromClient(a.rdb)
		a.log.Info("cache backend: redis")

	case "memory":
		a.memBackend = cache.NewMemoryBackend(a.baseCtx)
		backend = a.memBackend
		a.log.Info("cache backend: memory (in-process)")

	case "none":
		a.log.Info("cache backend: disabled")

	default:
		return fmt.Errorf("unknown cache mode: %s", a.cfg.Cache.Mode)
	}

	if backend != nil {
		a.respCache = cache.NewResponseCache(backend, cacheTTLs())
	}

	a.global = ratelimit.NewGlobalLimiter(a.cfg.RatePerMinute)
	a.perChat = ratelimit.NewPerChatLimiter()
	a.brk = breaker.New(breaker.Config{}, a.prom)

	invLog, err := logger.New(a.baseCtx, a.log)
	if err != nil {
		return fmt.Errorf("invocation logger: %w", err)
	}
	a.invLog = invLog

	return nil
}

// initPipeline wires the upstream client and the invocation pipeline.
func (a *App) initPipeline(_ context.Context) error {
	a.transport = upstream.New(a.cfg.APIBaseURL, a.cfg.BotToken, a.cfg.RequestTimeout)

	a.pipe = pipeline.New(pipeline.Deps{
		Cache:      a.respCache,
		Global:     a.global,
		PerChat:    a.perChat,
		Breaker:    a.brk,
		Metrics:    a.prom,
		Transport:  a.transport,
		Log:        a.log,
		InvLog:     a.invLog,
		Timeout:    a.cfg.RequestTimeout,
		MaxRetries: a.cfg.MaxRetries,
	})

	a.log.Info("pipeline ready",
		slog.Int("methods", schema.Count()),
		slog.Int("rate_per_minute", a.cfg.RatePerMinute),
		slog.Int("max_retries", a.cfg.MaxRetries),
		slog.Duration("request_timeout", a.cfg.RequestTimeout),
	)

	return nil
}

// initServers builds the configured listeners. None of them start here; Run
// owns the listening sockets.
func (a *App) initServers(_ context.Context) error {
	if a.cfg.HealthPort > 0 {
		agg := health.New(a.brk, a.global, a.perChat, a.respCache)
		a.healthSrv = health.NewServer(agg, a.prom.Handler())
	}

	if a.cfg.Webhook.Port > 0 {
		a.receiver = webhook.New(a.cfg.Webhook.Secret, a.prom)
	}

	srv := mcp.NewServer(a.pipe, a.cfg.MCP.ToolMode, a.version, a.log)
	switch a.cfg.MCP.Transport {
	case "http":
		a.mcpHTTP = mcp.NewHTTPTransport(srv, a.cfg.MCP.AuthToken)
	default:
		a.mcpStdio = mcp.NewStdioTransport(srv, os.Stdin, os.Stdout)
	}

	return nil
}

// cacheTTLs collects the per-method TTLs from the descriptor table.
func cacheTTLs() map[string]time.Duration {
	ttls := make(map[string]time.Duration)
	for _, d := range schema.All() {
		if d.CacheTTL > 0 {
			ttls[d.Name] = d.CacheTTL
		}
	}
	return ttls
}
