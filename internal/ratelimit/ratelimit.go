// Package ratelimit turns the service's x-ratelimit-* response headers into
// data and provides the optional client-side request limiter.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	HeaderLimit      = "X-RateLimit-Limit"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderReset      = "X-RateLimit-Reset"
	HeaderRetryAfter = "Retry-After"
)

// RateLimit is a snapshot of the quota headers of one response.
// Limit and Remaining are -1 when the header was absent or unparsable.
type RateLimit struct {
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	Reset      time.Time     `json:"reset"`
	RetryAfter time.Duration `json:"retryAfter"`
}

// Known reports whether the response carried quota headers at all.
func (r RateLimit) Known() bool { return r.Limit >= 0 && r.Remaining >= 0 }

// Exhausted reports whether no requests remain in the current window.
func (r RateLimit) Exhausted() bool { return r.Known() && r.Remaining == 0 }

// Wait returns how long to wait from now until the window resets, or the
// Retry-After hint when it is longer. Never negative.
func (r RateLimit) Wait(now time.Time) time.Duration {
	var d time.Duration
	if !r.Reset.IsZero() {
		d = r.Reset.Sub(now)
	}
	if r.RetryAfter > d {
		d = r.RetryAfter
	}
	if d < 0 {
		return 0
	}
	return d
}

// FromHeaders parses the quota headers. The reset header carries unix
// seconds; values above 1e12 are treated as milliseconds.
func FromHeaders(h http.Header) RateLimit {
	rl := RateLimit{
		Limit:     parseInt(h.Get(HeaderLimit)),
		Remaining: parseInt(h.Get(HeaderRemaining)),
	}
	if v := strings.TrimSpace(h.Get(HeaderReset)); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			if n > 1e12 {
				rl.Reset = time.UnixMilli(int64(n))
			} else {
				rl.Reset = time.Unix(int64(n), 0)
			}
		}
	}
	if v := strings.TrimSpace(h.Get(HeaderRetryAfter)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rl.RetryAfter = time.Duration(n) * time.Second
		} else if t, err := http.ParseTime(v); err == nil {
			rl.RetryAfter = time.Until(t)
		}
	}
	return rl
}

func parseInt(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// Limiter blocks outgoing requests to stay under a client-side budget.
// A nil *Limiter never blocks.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter allows rps requests per second with the given burst.
func NewLimiter(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{l: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until a request may be sent or ctx ends.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.l == nil {
		return nil
	}
	return l.l.Wait(ctx)
}
