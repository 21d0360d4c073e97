package types

import "github.com/koreanbots/koreanbots-go/internal/ratelimit"

// ------------------------------
// Response Envelopes
// ------------------------------

// Response is the read envelope: {code, data, version}.
type Response[T any] struct {
	Code    int `json:"code"`
	Data    T   `json:"data"`
	Version int `json:"version"`

	// RateLimit is filled from the response headers, never from the body.
	RateLimit ratelimit.RateLimit `json:"-"`
}

// Data is the list payload: {type, data: [...]} plus pagination hints.
type Data[T any] struct {
	Type        string `json:"type"`
	Data        []T    `json:"data"`
	CurrentPage int    `json:"currentPage,omitempty"`
	TotalPage   int    `json:"totalPage,omitempty"`
}

// ResponseUpdate acknowledges a stats update: {code, message, version}.
type ResponseUpdate struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Version int    `json:"version"`

	RateLimit ratelimit.RateLimit `json:"-"`
}

// ErrorEnvelope is the body shape of failed requests.
type ErrorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Version int    `json:"version"`
}

// RateLimitCarrier is implemented by envelopes that carry header data.
type RateLimitCarrier interface {
	SetRateLimit(ratelimit.RateLimit)
}

// SetRateLimit attaches the header snapshot.
func (r *Response[T]) SetRateLimit(rl ratelimit.RateLimit) { r.RateLimit = rl }

// SetRateLimit attaches the header snapshot.
func (r *ResponseUpdate) SetRateLimit(rl ratelimit.RateLimit) { r.RateLimit = rl }

var (
	_ RateLimitCarrier = (*Response[Bot])(nil)
	_ RateLimitCarrier = (*ResponseUpdate)(nil)
)
