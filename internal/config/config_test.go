package config

import (
	"strings"
	"testing"
	"time"
)

const testToken = "123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"

// setRequired sets the minimum environment for Load to succeed.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", testToken)
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
	}
	if cfg.RatePerMinute != DefaultRatePerMinute {
		t.Errorf("RatePerMinute = %d, want %d", cfg.RatePerMinute, DefaultRatePerMinute)
	}
	if cfg.Cache.Mode != "memory" {
		t.Errorf("Cache.Mode = %q, want memory", cfg.Cache.Mode)
	}
	if cfg.MCP.Transport != "stdio" {
		t.Errorf("MCP.Transport = %q, want stdio", cfg.MCP.Transport)
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing token, got nil")
	}
}

func TestLoadBadTokenFormat(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "not-a-token")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestTimeoutClampedLow(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_TIMEOUT", "100") // below 5000ms floor

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RequestTimeout != MinRequestTimeout {
		t.Errorf("RequestTimeout = %v, want clamped %v", cfg.RequestTimeout, MinRequestTimeout)
	}
}

func TestTimeoutClampedHigh(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_TIMEOUT", "600000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RequestTimeout != MaxRequestTimeout {
		t.Errorf("RequestTimeout = %v, want clamped %v", cfg.RequestTimeout, MaxRequestTimeout)
	}
}

func TestRateLimitClamped(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RatePerMinute != MaxRatePerMinute {
		t.Errorf("RatePerMinute = %d, want clamped %d", cfg.RatePerMinute, MaxRatePerMinute)
	}
}

func TestRetriesClampedNegative(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_RETRIES", "-2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", cfg.MaxRetries)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "verbose")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad log level")
	}
}

func TestRedisModeRequiresURL(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_MODE", "redis")
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when CACHE_MODE=redis without REDIS_URL")
	}
}

func TestWebhookURLMustBeHTTPS(t *testing.T) {
	setRequired(t)
	t.Setenv("WEBHOOK_URL", "http://example.com/hook")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-https webhook URL")
	}
}

func TestSlogLevelNameMapping(t *testing.T) {
	cases := map[string]string{
		"debug":    "debug",
		"info":     "info",
		"notice":   "info",
		"warning":  "warn",
		"error":    "error",
		"critical": "error",
	}
	for in, want := range cases {
		c := &Config{LogLevel: in}
		if got := c.SlogLevelName(); got != want {
			t.Errorf("SlogLevelName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogSafeMasksEverything(t *testing.T) {
	setRequired(t)
	t.Setenv("WEBHOOK_SECRET", "super-secret-value")
	t.Setenv("WEBHOOK_URL", "https://bots.example.com/hook/abc123")
	t.Setenv("REDIS_URL", "redis://:password@localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	safe := cfg.LogSafe()

	tok, _ := safe["bot_token"].(string)
	if strings.Contains(tok, "AAHdqTcvCH1vGWJxfSeofSAs0K") {
		t.Errorf("bot_token not masked: %q", tok)
	}
	if !strings.HasPrefix(tok, "1234") || !strings.HasSuffix(tok, "Dsaw") {
		t.Errorf("bot_token should keep first4/last4, got %q", tok)
	}
	if safe["webhook_secret"] != "[REDACTED]" {
		t.Errorf("webhook_secret = %v, want [REDACTED]", safe["webhook_secret"])
	}
	if got := safe["webhook_url"]; got != "https://bots.example.com/***" {
		t.Errorf("webhook_url = %v, want scheme://host/***", got)
	}
	if url, _ := safe["redis_url"].(string); strings.Contains(url, "password") {
		t.Errorf("redis_url leaks credentials: %q", url)
	}
}

func TestMaskTokenShortValues(t *testing.T) {
	if got := MaskToken("short"); got != "[REDACTED]" {
		t.Errorf("MaskToken(short) = %q", got)
	}
}

func TestClampDuration(t *testing.T) {
	if got := clampDuration(time.Second, MinRequestTimeout, MaxRequestTimeout); got != MinRequestTimeout {
		t.Errorf("clampDuration low = %v", got)
	}
}
