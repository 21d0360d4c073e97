package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ClassifyHTTPError determines whether an HTTP error should be retried.
// - 4xx client errors (except 408 and 429) are irrecoverable
// - 5xx server errors are recoverable
func ClassifyHTTPError(statusCode int, body string, underlyingErr error) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindAPI,
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: underlyingErr,
	}
}

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes - be conservative and retry
		return Recoverable
	}
}

// NewAPIError creates a classified error for a non-success response.
// code and message come from the response envelope when the body had one.
func NewAPIError(op string, statusCode, code int, message, body string, retryAfter time.Duration) *ClassifiedError {
	e := ClassifyHTTPError(statusCode, body, fmt.Errorf("%s failed: HTTP %d", op, statusCode))
	e.Op = op
	e.Code = code
	e.Message = message
	e.RetryAfter = retryAfter
	return e
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(op string, err error) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindTransport,
		Category:   Recoverable,
		Op:         op,
		Underlying: fmt.Errorf("%s network error: %w", op, err),
	}
}

// NewDecodeError creates a classified error for a body that does not match
// the expected schema. The message names the failing field when known.
func NewDecodeError(op string, statusCode int, body string, err error) *ClassifiedError {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		wrapped   error
	)
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "<root>"
		}
		wrapped = fmt.Errorf("field %q: cannot decode JSON %s into %s: %w", field, typeErr.Value, typeErr.Type, err)
	case errors.As(err, &syntaxErr):
		wrapped = fmt.Errorf("malformed JSON at offset %d: %w", syntaxErr.Offset, err)
	default:
		wrapped = fmt.Errorf("decode response: %w", err)
	}
	return &ClassifiedError{
		Kind:       KindDecode,
		Category:   Irrecoverable,
		Op:         op,
		StatusCode: statusCode,
		Body:       body,
		Underlying: wrapped,
	}
}

// NewConfigError creates a classified error for a request that cannot be
// built: missing parameters, malformed URLs, absent credentials.
func NewConfigError(op string, err error) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindConfig,
		Category:   Irrecoverable,
		Op:         op,
		Underlying: err,
	}
}
