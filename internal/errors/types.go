// Package errors provides error classification for the client SDK.
// Every fallible step returns a *ClassifiedError so callers can tell
// transport, decode, API and configuration failures apart, and so the
// async executor can pick a retry policy from the error alone.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, 429, network timeouts.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors should fail immediately without retry.
	// Examples: 401 Unauthorized, 404 Not Found, malformed JSON.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Kind is the taxonomy bucket of a failure.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindDecode
	KindAPI
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindAPI:
		return "api"
	case KindConfig:
		return "config"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a *ClassifiedError of the same kind.
var (
	ErrTransport   = errors.New("transport error")
	ErrDecode      = errors.New("decode error")
	ErrAPI         = errors.New("api error")
	ErrConfig      = errors.New("configuration error")
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
)

// ClassifiedError wraps an error with categorization metadata.
type ClassifiedError struct {
	Kind       Kind
	Category   ErrorCategory
	Op         string // operation, e.g. "get bot"
	StatusCode int    // HTTP status code (0 for non-HTTP errors)
	Code       int    // envelope code reported by the API
	Message    string // envelope message reported by the API
	Body       string // raw response body for debugging
	RetryAfter time.Duration
	Underlying error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	switch {
	case e.Kind == KindAPI && e.Message != "":
		return fmt.Sprintf("[%s] %s: HTTP %d: code %d: %s", e.Category, e.Op, e.StatusCode, e.Code, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("[%s] %s: HTTP %d: %v", e.Category, e.Op, e.StatusCode, e.Underlying)
	default:
		return fmt.Sprintf("[%s] %s: %v", e.Category, e.Op, e.Underlying)
	}
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// Is matches the kind sentinels plus the status-derived ones.
func (e *ClassifiedError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrAPI:
		return e.Kind == KindAPI
	case ErrConfig:
		return e.Kind == KindConfig
	case ErrNotFound:
		return e.Kind == KindAPI && e.StatusCode == 404
	case ErrRateLimited:
		return e.Kind == KindAPI && e.StatusCode == 429
	}
	return false
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category == Irrecoverable
	}
	return false
}
