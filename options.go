package koreanbots

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/koreanbots/koreanbots-go/internal/config"
	"github.com/koreanbots/koreanbots-go/internal/ratelimit"
	"github.com/koreanbots/koreanbots-go/internal/shardqueue"
	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Transport wrappers (auth, debug logging, rate limiting) are installed after
// all options ran, on top of whatever transport the options left in place.
type Option func(*Client) error

// WithBaseURL points the client at another origin, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := config.ParseBaseURL(raw)
		if err != nil {
			return err
		}
		c.baseURL = u.String()
		return nil
	}
}

// WithHTTPClient uses a copy of hc as the underlying client. Its transport
// is wrapped, never modified in place.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse bound on a single HTTP request including reading the response.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging logs each request/response at debug level when enabled
// is true. The token is attached after the dump and never logged.
//
// Do not enable this option in production: bodies are logged verbatim.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.debug = true
		}
		return nil
	}
}

// WithLogger replaces the global zerolog logger used by the client.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithRateLimit caps outgoing requests at rps per second with the given
// burst. Requests wait for a slot, honouring their context.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 {
			return fmt.Errorf("rate limit must be > 0")
		}
		c.limiter = ratelimit.NewLimiter(rps, burst)
		return nil
	}
}

// WithAsyncConfig sets the executor used by Async. Unset fields keep their
// defaults; ErrorHandler and Logger are always owned by the client.
func WithAsyncConfig(cfg shardqueue.Config) Option {
	return func(c *Client) error {
		c.asyncCfg = cfg
		return nil
	}
}

// WithAsyncRetry lets Async retry recoverable failures (transport errors,
// 408, 429, 5xx) up to attempts times with exponential backoff starting at
// base. Blocking calls are never retried.
func WithAsyncRetry(attempts int, base time.Duration) Option {
	return func(c *Client) error {
		if attempts < 1 {
			return fmt.Errorf("attempts must be >= 1")
		}
		c.asyncCfg.MaxAttempts = attempts
		c.asyncCfg.BaseBackoff = base
		return nil
	}
}
