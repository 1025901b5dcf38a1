// Package logger implements structured logging support for the gateway:
// recursive secret redaction for log fields and a non-blocking batched
// invocation logger.
//
// Everything that reaches a log record passes through Redact first. The bot
// token must never appear in logs, not even inside error strings returned by
// the HTTP stack (which embed the request URL).
package logger

import (
	"regexp"
	"strings"
)

// maxRedactDepth bounds recursion through nested maps and slices. Values
// below the bound are replaced by a sentinel rather than walked.
const maxRedactDepth = 10

// depthSentinel replaces values nested too deeply to scan.
const depthSentinel = "[REDACTED:depth]"

// redacted replaces values whose key marks them as secret.
const redacted = "[REDACTED]"

// sensitiveKeys marks map keys whose values are always redacted. Matching is
// case-insensitive substring, so "bot_token", "BotToken" and
// "X-Webhook-Secret" all hit.
var sensitiveKeys = []string{
	"token",
	"password",
	"secret",
	"apikey",
	"api_key",
	"authorization",
	"credentials",
}

// tokenPattern matches the platform's bot-token format wherever it appears
// inside a string value (URLs, error messages).
var tokenPattern = regexp.MustCompile(`\b\d{5,}:[A-Za-z0-9_-]{25,}`)

// bearerPattern matches bearer credentials embedded in header dumps.
var bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._~+/-]+=*`)

// SensitiveKey reports whether a map key denotes a secret value.
func SensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}

// RedactString scrubs known secret patterns from a string value. Used for
// values whose key is not itself sensitive — a URL field may still embed the
// token.
func RedactString(s string) string {
	s = tokenPattern.ReplaceAllString(s, redacted)
	s = bearerPattern.ReplaceAllString(s, redacted)
	return s
}

// Redact returns a deep copy of v with secret values removed. Maps and
// slices are walked recursively up to maxRedactDepth; strings are re-scanned
// for token patterns regardless of their key. Scalars pass through.
func Redact(v any) any {
	return redact(v, 0)
}

func redact(v any, depth int) any {
	if depth > maxRedactDepth {
		return depthSentinel
	}

	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if SensitiveKey(k) {
				out[k] = redacted
				continue
			}
			out[k] = redact(val, depth+1)
		}
		return out

	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = redact(val, depth+1)
		}
		return out

	case string:
		return RedactString(t)

	default:
		return v
	}
}
