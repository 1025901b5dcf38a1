// Package botapi defines the canonical reply envelope exchanged between the
// gateway and its clients, mirroring the Bot API wire format
// {ok, result?, description?, error_code?, parameters?}.
//
// Every invocation — success, upstream failure, or a failure synthesised by
// the gateway itself (validation, rate limit, open breaker) — is surfaced as
// an Envelope. Failures are values, never panics, so callers branch on
// env.OK instead of unwrapping errors.
package botapi

import (
	"encoding/json"
	"fmt"
)

// ResponseParameters carries the optional "parameters" object the platform
// attaches to some error replies, most importantly retry_after on 429s.
type ResponseParameters struct {
	RetryAfter      int   `json:"retry_after,omitempty"`
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
}

// Envelope is the canonical reply shape. On success OK is true and Result
// holds the platform's raw result untouched. On failure Description and
// ErrorCode describe the problem; ErrorCode 0 means "no code" (a transport
// level failure that never produced an upstream reply).
type Envelope struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`

	// cached marks an envelope served from the response cache. Internal
	// bookkeeping for metrics and logs; never serialised.
	cached bool
}

// WithCached returns a copy of the envelope flagged as cache-served.
func (e *Envelope) WithCached() *Envelope {
	out := *e
	out.cached = true
	return &out
}

// Cached reports whether the envelope was served from the response cache.
func (e *Envelope) Cached() bool {
	return e != nil && e.cached
}

// Success wraps a raw result in a successful envelope.
func Success(result json.RawMessage) *Envelope {
	return &Envelope{OK: true, Result: result}
}

// Failure builds an error envelope with the given code and description.
// Pass code 0 for transport-level failures that carry no upstream code.
func Failure(code int, description string) *Envelope {
	return &Envelope{OK: false, ErrorCode: code, Description: description}
}

// Failuref is Failure with fmt.Sprintf formatting.
func Failuref(code int, format string, args ...any) *Envelope {
	return &Envelope{OK: false, ErrorCode: code, Description: fmt.Sprintf(format, args...)}
}

// RateLimited builds the 429 envelope returned when an internal limiter
// refuses an invocation, with retry_after rounded up to whole seconds.
func RateLimited(description string, retryAfterSeconds int) *Envelope {
	return &Envelope{
		OK:          false,
		ErrorCode:   429,
		Description: description,
		Parameters:  &ResponseParameters{RetryAfter: retryAfterSeconds},
	}
}

// RetryAfterSeconds returns the server-instructed delay, or 0 when absent.
func (e *Envelope) RetryAfterSeconds() int {
	if e == nil || e.Parameters == nil {
		return 0
	}
	return e.Parameters.RetryAfter
}

// JSON renders the envelope as compact JSON. Marshalling an Envelope cannot
// fail (all fields are marshal-safe), so the error is swallowed.
func (e *Envelope) JSON() []byte {
	data, _ := json.Marshal(e)
	return data
}
