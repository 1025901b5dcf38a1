package botapi

import "strings"

// Category labels every non-success outcome for metrics and logs. The seven
// values are mutually exclusive; Classify assigns exactly one per envelope.
type Category string

const (
	CategoryValidation  Category = "VALIDATION"
	CategoryClient      Category = "CLIENT"
	CategoryServer      Category = "SERVER"
	CategoryNetwork     Category = "NETWORK"
	CategoryRateLimited Category = "RATE_LIMITED"
	CategoryTimeout     Category = "TIMEOUT"
	CategoryCircuitOpen Category = "CIRCUIT_OPEN"
)

// Classify maps a failure envelope to its error category. First match wins:
//
//	description mentions "timeout"         → TIMEOUT
//	description mentions "circuit breaker" → CIRCUIT_OPEN
//	no error code                          → NETWORK
//	429                                    → RATE_LIMITED
//	≥ 500                                  → SERVER
//	≥ 400                                  → CLIENT
//
// Classifying a success is a programmer error and panics; the top-level
// handler converts such panics into a generic internal-error envelope.
func Classify(e *Envelope) Category {
	if e.OK {
		panic("botapi: Classify called on a successful envelope")
	}

	desc := strings.ToLower(e.Description)
	switch {
	case strings.Contains(desc, "validation"):
		return CategoryValidation
	case strings.Contains(desc, "timeout"):
		return CategoryTimeout
	case strings.Contains(desc, "circuit breaker"):
		return CategoryCircuitOpen
	case e.ErrorCode == 0:
		return CategoryNetwork
	case e.ErrorCode == 429:
		return CategoryRateLimited
	case e.ErrorCode >= 500:
		return CategoryServer
	default:
		return CategoryClient
	}
}
