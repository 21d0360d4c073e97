package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
	"github.com/koreanbots/koreanbots-go/internal/ratelimit"
	"github.com/koreanbots/koreanbots-go/internal/types"
)

// UserAgent is sent with every request.
const UserAgent = "koreanbots-go/2 (+https://github.com/koreanbots/koreanbots-go)"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Request describes one call against the API. The request builder is the
// single core shared by the blocking and async clients.
type Request struct {
	Op     string // operation name used in errors and metrics, e.g. "get bot"
	Method string
	Path   string            // relative to the base URL, already escaped
	Query  map[string]string // nil or empty means no query string
	Body   any               // JSON-encoded; only sent with POST
	Auth   bool              // the client's token must be attached
}

type authKey struct{}

// WithAuth marks ctx so the client's transport attaches the Authorization header.
func WithAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, authKey{}, true)
}

// AuthRequired reports whether the request context was marked with WithAuth.
func AuthRequired(ctx context.Context) bool {
	v, _ := ctx.Value(authKey{}).(bool)
	return v
}

// BuildURL joins base, "/" and path, and appends the percent-encoded query.
func BuildURL(baseURL, path string, query map[string]string) (string, error) {
	raw := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", raw)
	}
	if len(query) > 0 {
		values := make(url.Values, len(query))
		for k, v := range query {
			if k == "" {
				return "", fmt.Errorf("empty query key")
			}
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

// NewHTTPRequest builds the *http.Request for r. GET requests never carry a body.
func NewHTTPRequest(ctx context.Context, baseURL string, r Request) (*http.Request, error) {
	target, err := BuildURL(baseURL, r.Path, r.Query)
	if err != nil {
		return nil, kberrors.NewConfigError(r.Op, err)
	}

	var body io.Reader
	if r.Body != nil && r.Method != http.MethodGet {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, kberrors.NewConfigError(r.Op, fmt.Errorf("encode body: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	if r.Auth {
		ctx = WithAuth(ctx)
	}
	httpReq, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, kberrors.NewConfigError(r.Op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", UserAgent)
	if body != nil || r.Auth {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// result is a fully read response.
type result struct {
	status    int
	body      []byte
	finalURL  string
	rateLimit ratelimit.RateLimit
}

// send executes r and returns the body of a successful response. Transport
// failures, non-2xx statuses and error envelopes come back classified.
func send(ctx context.Context, httpClient types.HTTPClient, baseURL string, r Request) (*result, error) {
	if err := ctx.Err(); err != nil {
		return nil, kberrors.NewNetworkError(r.Op, err)
	}
	httpReq, err := NewHTTPRequest(ctx, baseURL, r)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		requestsTotal.WithLabelValues(r.Op, "error").Inc()
		return nil, kberrors.NewNetworkError(r.Op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	requestDuration.WithLabelValues(r.Op).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(r.Op, strconv.Itoa(resp.StatusCode)).Inc()
	if err != nil {
		return nil, kberrors.NewNetworkError(r.Op, fmt.Errorf("read body: %w", err))
	}

	res := &result{
		status:    resp.StatusCode,
		body:      body,
		rateLimit: ratelimit.FromHeaders(resp.Header),
	}
	if resp.Request != nil && resp.Request.URL != nil {
		res.finalURL = resp.Request.URL.String()
	}
	if res.rateLimit.Known() {
		rateLimitRemaining.Set(float64(res.rateLimit.Remaining))
	}

	if err := checkStatus(r.Op, res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkStatus turns non-2xx responses, and 2xx bodies whose envelope code
// reports a failure, into API errors carrying code and message.
func checkStatus(op string, res *result) error {
	var env types.ErrorEnvelope
	isJSON := json.Unmarshal(res.body, &env) == nil

	if res.status >= 200 && res.status < 300 {
		if isJSON && env.Code >= 400 {
			return kberrors.NewAPIError(op, env.Code, env.Code, env.Message, string(res.body), res.rateLimit.Wait(time.Now()))
		}
		return nil
	}
	if !isJSON {
		env = types.ErrorEnvelope{Code: res.status, Message: strings.TrimSpace(string(res.body))}
	}
	return kberrors.NewAPIError(op, res.status, env.Code, env.Message, string(res.body), res.rateLimit.Wait(time.Now()))
}

// Do executes r and decodes the body into a fresh T. Envelopes that carry
// rate-limit data receive the response's header snapshot.
func Do[T any](ctx context.Context, httpClient types.HTTPClient, baseURL string, r Request) (*T, error) {
	res, err := send(ctx, httpClient, baseURL, r)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(res.body, out); err != nil {
		return nil, kberrors.NewDecodeError(r.Op, res.status, string(res.body), err)
	}
	if carrier, ok := any(out).(types.RateLimitCarrier); ok {
		carrier.SetRateLimit(res.rateLimit)
	}
	return out, nil
}

// escape percent-encodes a single path segment.
func escape(segment string) string { return url.PathEscape(segment) }
