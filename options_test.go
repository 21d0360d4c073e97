package koreanbots

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPTimeout(t *testing.T) {
	c := &Client{http: &http.Client{}}
	if err := WithHTTPTimeout(5 * time.Second)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("http timeout not set")
	}
	if err := WithHTTPTimeout(0)(c); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestOptionValidation(t *testing.T) {
	c := &Client{http: &http.Client{}}
	if err := WithHTTPClient(nil)(c); err == nil {
		t.Fatalf("expected error for nil http client")
	}
	if err := WithRateLimit(0, 1)(c); err == nil {
		t.Fatalf("expected error for zero rate")
	}
	if err := WithAsyncRetry(0, time.Millisecond)(c); err == nil {
		t.Fatalf("expected error for zero attempts")
	}
	if err := WithAsyncRetry(3, 10*time.Millisecond)(c); err != nil {
		t.Fatalf("WithAsyncRetry: %v", err)
	}
	if c.asyncCfg.MaxAttempts != 3 || c.asyncCfg.BaseBackoff != 10*time.Millisecond {
		t.Fatalf("async retry not applied: %+v", c.asyncCfg)
	}
}

func TestWithHTTPClient_DoesNotMutateCaller(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})
	hc := &http.Client{Transport: rt}
	if _, err := New("t", WithHTTPClient(hc)); err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := hc.Transport.(roundTripFunc); !ok {
		t.Fatalf("caller's transport was replaced with %T", hc.Transport)
	}
}

func TestDebugLogging(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	var called bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})
	c, err := New("SECRET",
		WithLogger(logger),
		WithHTTPClient(&http.Client{Transport: rt}),
		WithDebugLogging(true),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !called {
		t.Fatalf("base transport not invoked")
	}
	out := buf.String()
	if !strings.Contains(out, `"request_id"`) || !strings.Contains(out, "HTTP response") {
		t.Fatalf("expected request/response debug lines, got %s", out)
	}
}

func TestDebugLogging_AuthenticatedCallsDoNotLogToken(t *testing.T) {
	var buf strings.Builder
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	var sentAuth []string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		sentAuth = append(sentAuth, r.Header.Get("Authorization"))
		body := `{"code":200,"data":{"voted":true,"lastVote":0},"version":2}`
		if strings.HasSuffix(r.URL.Path, "/stats") {
			body = `{"code":200,"message":"ok","version":2}`
		}
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})
	c, err := New("SECRET-TOKEN",
		WithLogger(logger),
		WithHTTPClient(&http.Client{Transport: rt}),
		WithDebugLogging(true),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()
	if _, err := c.CheckVote(ctx, "1", "2"); err != nil {
		t.Fatalf("CheckVote: %v", err)
	}
	if _, err := c.UpdateServers(ctx, "1", 42); err != nil {
		t.Fatalf("UpdateServers: %v", err)
	}

	for i, got := range sentAuth {
		if got != "SECRET-TOKEN" {
			t.Fatalf("request %d: token not sent, got %q", i, got)
		}
	}
	out := buf.String()
	if !strings.Contains(out, "HTTP request") {
		t.Fatalf("expected debug output, got %s", out)
	}
	if strings.Contains(out, "SECRET-TOKEN") {
		t.Fatalf("token leaked into debug log: %s", out)
	}
}

func TestNew_AutoEnableDebugViaEnv(t *testing.T) {
	t.Setenv("KOREANBOTS_DEBUG", "true")
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dt, ok := c.http.Transport.(*debugTransport)
	if !ok {
		t.Fatalf("expected debugTransport when KOREANBOTS_DEBUG=true, got %T", c.http.Transport)
	}
	if _, ok := dt.base.(*authTransport); !ok {
		t.Fatalf("expected authTransport beneath debug logging, got %T", dt.base)
	}
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	c, err := New("", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err == nil {
		t.Fatalf("expected error from underlying transport")
	}
}

func TestRateLimitTransport_HonoursContext(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header), Request: r}, nil
	})
	c, err := New("", WithHTTPClient(&http.Client{Transport: rt}), WithRateLimit(0.001, 1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err != nil {
		t.Fatalf("first request uses the burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, _ = http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com", http.NoBody)
	if _, err := c.http.Do(req); err == nil {
		t.Fatalf("expected the limiter to give up on the deadline")
	}
}
