// Package app wires up all subsystems and owns the application lifecycle.
//
// Startup order:
//  1. initInfra    — external connections (Redis when needed)
//  2. initServices — metrics, cache, limiters, breaker, invocation logger
//  3. initPipeline — upstream client + invocation pipeline
//  4. initServers  — health, webhook receiver, tool-protocol transport
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/nulpointcorp/bot-gateway/internal/breaker"
	"github.com/nulpointcorp/bot-gateway/internal/cache"
	"github.com/nulpointcorp/bot-gateway/internal/config"
	"github.com/nulpointcorp/bot-gateway/internal/health"
	"github.com/nulpointcorp/bot-gateway/internal/logger"
	"github.com/nulpointcorp/bot-gateway/internal/mcp"
	"github.com/nulpointcorp/bot-gateway/internal/metrics"
	"github.com/nulpointcorp/bot-gateway/internal/pipeline"
	"github.com/nulpointcorp/bot-gateway/internal/ratelimit"
	"github.com/nulpointcorp/bot-gateway/internal/upstream"
	"github.com/nulpointcorp/bot-gateway/internal/webhook"
)

// errStdinClosed signals that the stdio transport reached EOF, which is the
// normal way a model-driven client ends the session.
var errStdinClosed = errors.New("stdin closed")

// App owns all long-lived resources and exposes Run / Close.
type App struct {
	version string
	cfg     *config.Config
	baseCtx context.Context
	log     *slog.Logger

	// Optional external connections — nil when not configured.
	rdb *redis.Client

	invLog     *logger.Logger
	memBackend *cache.MemoryBackend
	respCache  *cache.ResponseCache

	prom    *metrics.Registry
	global  *ratelimit.GlobalLimiter
	perChat *ratelimit.PerChatLimiter
	brk     *breaker.Breaker

	transport *upstream.Client
	pipe      *pipeline.Pipeline

	healthSrv *health.Server
	receiver  *webhook.Receiver
	mcpStdio  *mcp.StdioTransport
	mcpHTTP   *mcp.HTTPTransport
}

// New initialises all subsystems and returns a ready-to-run App.
// All resources allocated here are released by Close.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, version string) (*App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("app: context must not be nil")
	}

	a := &App{cfg: cfg, version: version, baseCtx: ctx, log: log}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"infra", a.initInfra},
		{"services", a.initServices},
		{"pipeline", a.initPipeline},
		{"servers", a.initServers},
	}

	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("app: init %s: %w", s.name, err)
		}
	}

	return a, nil
}

// Run starts all configured listeners and blocks until ctx is cancelled, a
// listener fails, or (in stdio mode) the client closes stdin. It shuts the
// app down gracefully when returning.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting gateway",
		slog.String("version", a.version),
		slog.String("transport", a.cfg.MCP.Transport),
		slog.String("tool_mode", a.cfg.MCP.ToolMode),
		slog.String("cache_mode", a.cfg.Cache.Mode),
	)

	g, gctx := errgroup.WithContext(ctx)

	if a.healthSrv != nil {
		addr := fmt.Sprintf(":%d", a.cfg.HealthPort)
		a.log.Info("health listener starting", slog.String("addr", addr))
		g.Go(func() error {
			return a.healthSrv.ListenAndServe(addr)
		})
	}

	if a.receiver != nil {
		addr := fmt.Sprintf(":%d", a.cfg.Webhook.Port)
		a.log.Info("webhook receiver starting", slog.String("addr", addr))
		g.Go(func() error {
			return a.receiver.ListenAndServe(addr)
		})
		a.registerWebhook(gctx)
	}

	switch a.cfg.MCP.Transport {
	case "http":
		addr := fmt.Sprintf(":%d", a.cfg.MCP.Port)
		a.log.Info("tool server starting", slog.String("addr", addr))
		g.Go(func() error {
			return a.mcpHTTP.ListenAndServe(addr)
		})
	default:
		g.Go(func() error {
			if err := a.mcpStdio.Serve(gctx); err != nil {
				return err
			}
			return errStdinClosed
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.shutdown()
		return nil
	})

	err := g.Wait()
	if errors.Is(err, errStdinClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// shutdown stops the listeners and deregisters the webhook, then releases
// resources.
func (a *App) shutdown() {
	a.log.Info("shutting down")

	if a.receiver != nil {
		a.deregisterWebhook()
		if err := a.receiver.Shutdown(); err != nil {
			a.log.Error("webhook receiver shutdown error", slog.String("error", err.Error()))
		}
	}
	if a.mcpHTTP != nil {
		if err := a.mcpHTTP.Shutdown(); err != nil {
			a.log.Error("tool server shutdown error", slog.String("error", err.Error()))
		}
	}
	if a.healthSrv != nil {
		if err := a.healthSrv.Shutdown(); err != nil {
			a.log.Error("health listener shutdown error", slog.String("error", err.Error()))
		}
	}

	a.Close()
}

// Close releases all resources in reverse-init order. Safe to call multiple
// times and from multiple goroutines.
func (a *App) Close() {
	if a.invLog != nil {
		if err := a.invLog.Close(); err != nil {
			a.log.Error("logger close error", slog.String("error", err.Error()))
		}
		a.invLog = nil
	}
	if a.memBackend != nil {
		a.memBackend.Close()
		a.memBackend = nil
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Error("redis close error", slog.String("error", err.Error()))
		}
		a.rdb = nil
	}
}

// registerWebhook tells the platform to deliver updates to the configured
// public URL. Registration failures are logged, not fatal: the receiver still
// serves whatever the platform sends.
func (a *App) registerWebhook(ctx context.Context) {
	if a.cfg.Webhook.URL == "" {
		return
	}

	params := map[string]any{"url": a.cfg.Webhook.URL}
	if a.cfg.Webhook.Secret != "" {
		params["secret_token"] = a.cfg.Webhook.Secret
	}

	env := a.pipe.Invoke(ctx, "setWebhook", params, pipeline.Options{SkipGlobalLimit: true})
	if !env.OK {
		a.log.Warn("webhook registration failed",
			slog.Int("error_code", env.ErrorCode),
			slog.String("description", env.Description),
		)
		return
	}
	a.log.Info("webhook registered", slog.String("url", config.MaskURL(a.cfg.Webhook.URL)))
}

// deregisterWebhook removes the registration on shutdown so the platform
// stops delivering to a dead listener.
func (a *App) deregisterWebhook() {
	if a.cfg.Webhook.URL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	env := a.pipe.Invoke(ctx, "deleteWebhook", map[string]any{}, pipeline.Options{SkipGlobalLimit: true})
	if !env.OK {
		a.log.Warn("webhook deregistration failed",
			slog.Int("error_code", env.ErrorCode),
			slog.String("description", env.Description),
		)
		return
	}
	a.log.Info("webhook deregistered")
}

// connectRedis parses the URL and verifies connectivity with a PING.
// Returns an error — callers decide whether to fatal or degrade.
func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return rdb, nil
}
