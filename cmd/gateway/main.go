// Command gateway is the resilient bot-platform gateway.
//
// It exposes the platform's HTTP API to model-driven clients over the tool
// protocol (stdio by default, HTTP when configured) and fronts every call
// with validation, caching, rate limiting, a circuit breaker, and retries.
//
// Quick-start (stdio transport, in-memory cache, no Redis required):
//
//	TELEGRAM_BOT_TOKEN=123456:ABC-DEF... ./gateway
//
// See .env.example for all available configuration variables.
package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nulpointcorp/bot-gateway/internal/app"
	"github.com/nulpointcorp/bot-gateway/internal/config"
)

// version is overridden at build time via -ldflags="-X main.version=x.y.z".
var version = "0.1.0"

func main() {
	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration — exits with a descriptive error if required vars are missing.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Build the structured logger. All subsystems share this instance.
	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("configuration loaded", slog.Any("config", cfg.LogSafe()))

	// Initialise and run the application.
	a, err := app.New(ctx, cfg, logger, version)
	if err != nil {
		logger.Error("startup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		logger.Error("gateway stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildLogger constructs a JSON slog.Logger. On the stdio transport the log
// stream moves to stderr because stdout carries the protocol frames.
func buildLogger(cfg *config.Config) *slog.Logger {
	var l slog.Level
	switch cfg.SlogLevelName() {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	var w io.Writer = os.Stdout
	if cfg.MCP.Transport != "http" {
		w = os.Stderr
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     l,
		AddSource: cfg.Debug,
	}))
}
