package koreanbots

import (
	"errors"

	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
	"github.com/koreanbots/koreanbots-go/internal/shardqueue"
)

// Error kinds. Every error returned by the client matches exactly one of
// ErrTransport, ErrDecode, ErrAPI or ErrConfig under errors.Is.
var (
	ErrTransport = kberrors.ErrTransport
	ErrDecode    = kberrors.ErrDecode
	ErrAPI       = kberrors.ErrAPI
	ErrConfig    = kberrors.ErrConfig

	// ErrNotFound matches API errors with status 404.
	ErrNotFound = kberrors.ErrNotFound
	// ErrRateLimited matches API errors with status 429.
	ErrRateLimited = kberrors.ErrRateLimited
)

// ErrMissingToken is wrapped by the config error returned when an
// authenticated endpoint is called on a client built without a token.
var ErrMissingToken = errors.New("koreanbots: token required for this endpoint")

// ErrClosed is returned by async submissions after Close.
var ErrClosed = shardqueue.ErrExecutorClosed

// ErrBackPressure is returned when the async executor's shard queue is full.
var ErrBackPressure = errors.New("back-pressure (queue full)")

// APIError is the concrete error type behind every client failure.
type APIError = kberrors.ClassifiedError

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// IsTransport reports whether the request never produced a response.
func IsTransport(err error) bool { return errors.Is(err, ErrTransport) }

// IsDecode reports whether a response body did not match the expected shape.
func IsDecode(err error) bool { return errors.Is(err, ErrDecode) }

// IsConfig reports whether the request was rejected before any I/O.
func IsConfig(err error) bool { return errors.Is(err, ErrConfig) }

// AsAPIError extracts the API failure (status, code, message) from err.
// It returns false for transport, decode and config errors.
func AsAPIError(err error) (*APIError, bool) {
	var ce *kberrors.ClassifiedError
	if errors.As(err, &ce) && ce.Kind == kberrors.KindAPI {
		return ce, true
	}
	return nil, false
}
