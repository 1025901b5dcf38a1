// Package config loads and validates all runtime configuration for the
// gateway.
//
// Configuration is read from environment variables (preferred for containers)
// or from a config.yaml file in the working directory. Environment variables
// take precedence over the YAML file; a .env file is loaded first when
// present.
//
// Only TELEGRAM_BOT_TOKEN is strictly required. Redis is optional — the
// default CACHE_MODE=memory uses the built-in in-process cache with no
// external dependencies.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Clamp ranges and defaults. Values outside a range are pulled to the nearest
// bound rather than rejected, so a misconfigured deployment degrades instead
// of refusing to start.
const (
	DefaultRequestTimeout = 30 * time.Second
	MinRequestTimeout     = 5 * time.Second
	MaxRequestTimeout     = 120 * time.Second

	DefaultMaxRetries = 3
	MaxMaxRetries     = 10

	DefaultRatePerMinute = 30
	MinRatePerMinute     = 1
	MaxRatePerMinute     = 60
)

// botTokenRe matches the platform's token format: numeric bot id, a colon,
// then the secret part.
var botTokenRe = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

// Config is the top-level configuration container.
type Config struct {
	// BotToken is the upstream platform bot token. Required.
	BotToken string

	// APIBaseURL overrides the upstream API endpoint
	// (default https://api.telegram.org). Useful for local mocks.
	APIBaseURL string

	// LogLevel controls the minimum log level. One of:
	// debug, info, notice, warning, error, critical.
	LogLevel string

	// Debug enables verbose diagnostics (source locations in log records).
	Debug bool

	// RequestTimeout is the per-call HTTP timeout, clamped to 5s..120s.
	RequestTimeout time.Duration

	// MaxRetries is the retry budget per invocation, clamped to 0..10.
	MaxRetries int

	// RatePerMinute is the global outbound budget, clamped to 1..60.
	RatePerMinute int

	// Webhook configures the inbound update receiver. The receiver only
	// starts when Port is non-zero.
	Webhook WebhookConfig

	// HealthPort is the port for the health/metrics listener. 0 disables it.
	HealthPort int

	// Cache selects the response cache backend.
	Cache CacheConfig

	// Redis holds the connection URL, required only when Cache.Mode is "redis".
	Redis RedisConfig

	// MCP configures the tool-protocol server.
	MCP MCPConfig
}

// WebhookConfig holds the inbound webhook receiver settings.
type WebhookConfig struct {
	// URL is the public URL registered with the platform on startup.
	// Empty means no registration is attempted.
	URL string

	// Secret, when set, must match the platform's secret-token header on
	// every delivered update.
	Secret string

	// Port is the local listen port. 0 disables the receiver.
	Port int
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	// Mode selects the backend:
	//   "memory" — in-process TTL cache (default; not shared across replicas)
	//   "redis"  — Redis-backed (requires REDIS_URL)
	//   "none"   — caching disabled
	Mode string
}

// RedisConfig holds the Redis connection URL.
type RedisConfig struct {
	URL string
}

// MCPConfig controls the tool-protocol surface.
type MCPConfig struct {
	// Transport is "stdio" (default) or "http".
	Transport string

	// Port is the HTTP transport listen port. Ignored for stdio.
	Port int

	// AuthToken, when set, requires "Authorization: Bearer <token>" on the
	// HTTP transport.
	AuthToken string

	// ToolMode is "flat" (one tool per API method) or "meta"
	// (find_tool + call_tool). Default: flat.
	ToolMode string
}

// Load reads configuration from environment variables and (optionally) from
// config.yaml in the current working directory.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// ── Defaults ──────────────────────────────────────────────────────────────
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	v.SetDefault("REQUEST_TIMEOUT", int(DefaultRequestTimeout.Milliseconds()))
	v.SetDefault("MAX_RETRIES", DefaultMaxRetries)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", DefaultRatePerMinute)
	v.SetDefault("CACHE_MODE", "memory")
	v.SetDefault("MCP_TRANSPORT", "stdio")
	v.SetDefault("TOOL_MODE", "flat")

	cfg := &Config{
		BotToken:   v.GetString("TELEGRAM_BOT_TOKEN"),
		APIBaseURL: strings.TrimRight(v.GetString("TELEGRAM_API_URL"), "/"),
		LogLevel:   strings.ToLower(v.GetString("LOG_LEVEL")),
		Debug:      v.GetBool("DEBUG"),

		RequestTimeout: clampDuration(
			time.Duration(v.GetInt64("REQUEST_TIMEOUT"))*time.Millisecond,
			MinRequestTimeout, MaxRequestTimeout,
		),
		MaxRetries:    clampInt(v.GetInt("MAX_RETRIES"), 0, MaxMaxRetries),
		RatePerMinute: clampInt(v.GetInt("RATE_LIMIT_PER_MINUTE"), MinRatePerMinute, MaxRatePerMinute),

		Webhook: WebhookConfig{
			URL:    v.GetString("WEBHOOK_URL"),
			Secret: v.GetString("WEBHOOK_SECRET"),
			Port:   v.GetInt("WEBHOOK_PORT"),
		},

		HealthPort: v.GetInt("HEALTH_PORT"),

		Cache: CacheConfig{Mode: strings.ToLower(v.GetString("CACHE_MODE"))},
		Redis: RedisConfig{URL: v.GetString("REDIS_URL")},

		MCP: MCPConfig{
			Transport: strings.ToLower(v.GetString("MCP_TRANSPORT")),
			Port:      v.GetInt("MCP_PORT"),
			AuthToken: v.GetString("MCP_AUTH_TOKEN"),
			ToolMode:  strings.ToLower(v.GetString("TOOL_MODE")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks all semantic constraints that cannot be expressed as
// defaults or clamps.
func (c *Config) validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("config: TELEGRAM_BOT_TOKEN is required")
	}
	if !botTokenRe.MatchString(c.BotToken) {
		return fmt.Errorf("config: TELEGRAM_BOT_TOKEN has invalid format (expected <digits>:<secret>)")
	}

	switch c.LogLevel {
	case "debug", "info", "notice", "warning", "error", "critical":
	default:
		return fmt.Errorf(
			"config: invalid LOG_LEVEL %q; must be one of: debug, info, notice, warning, error, critical",
			c.LogLevel,
		)
	}

	switch c.Cache.Mode {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("config: invalid CACHE_MODE %q; must be one of: memory, redis, none", c.Cache.Mode)
	}
	if c.Cache.Mode == "redis" && c.Redis.URL == "" {
		return fmt.Errorf(
			"config: REDIS_URL is required when CACHE_MODE=redis; " +
				"set CACHE_MODE=memory to use the built-in in-process cache",
		)
	}

	switch c.MCP.Transport {
	case "stdio":
	case "http":
		if c.MCP.Port <= 0 {
			return fmt.Errorf("config: MCP_PORT is required when MCP_TRANSPORT=http")
		}
	default:
		return fmt.Errorf("config: invalid MCP_TRANSPORT %q; must be stdio or http", c.MCP.Transport)
	}

	switch c.MCP.ToolMode {
	case "flat", "meta":
	default:
		return fmt.Errorf("config: invalid TOOL_MODE %q; must be flat or meta", c.MCP.ToolMode)
	}

	if c.Webhook.URL != "" {
		u, err := url.Parse(c.Webhook.URL)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("config: WEBHOOK_URL must be a valid https URL")
		}
	}

	return nil
}

// SlogLevelName maps the six configured level names onto slog's four levels.
func (c *Config) SlogLevelName() string {
	switch c.LogLevel {
	case "notice":
		return "info"
	case "warning":
		return "warn"
	case "critical":
		return "error"
	default:
		return c.LogLevel
	}
}

// LogSafe returns a view of the configuration safe to emit in logs: the bot
// token is shortened to its first and last four characters, secrets are
// replaced wholesale, and URLs keep only scheme and host.
func (c *Config) LogSafe() map[string]any {
	safe := map[string]any{
		"bot_token":             MaskToken(c.BotToken),
		"api_base_url":          MaskURL(c.APIBaseURL),
		"log_level":             c.LogLevel,
		"debug":                 c.Debug,
		"request_timeout_ms":    c.RequestTimeout.Milliseconds(),
		"max_retries":           c.MaxRetries,
		"rate_limit_per_minute": c.RatePerMinute,
		"cache_mode":            c.Cache.Mode,
		"health_port":           c.HealthPort,
		"webhook_port":          c.Webhook.Port,
		"mcp_transport":         c.MCP.Transport,
		"tool_mode":             c.MCP.ToolMode,
	}
	if c.Webhook.URL != "" {
		safe["webhook_url"] = MaskURL(c.Webhook.URL)
	}
	if c.Webhook.Secret != "" {
		safe["webhook_secret"] = "[REDACTED]"
	}
	if c.Redis.URL != "" {
		safe["redis_url"] = MaskURL(c.Redis.URL)
	}
	if c.MCP.AuthToken != "" {
		safe["mcp_auth_token"] = "[REDACTED]"
	}
	return safe
}

// MaskToken shortens a secret to "first4…last4". Values of eight characters
// or fewer are fully redacted — showing both ends would reveal the whole
// thing.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "[REDACTED]"
	}
	return token[:4] + "…" + token[len(token)-4:]
}

// MaskURL reduces a URL to "scheme://host/***" so path segments and userinfo
// (which may embed credentials) never reach the logs.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***"
	}
	return u.Scheme + "://" + u.Host + "/***"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loadDotEnv populates process env vars from a .env file when present.
func loadDotEnv(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config: %s is a directory, expected a file", path)
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}
