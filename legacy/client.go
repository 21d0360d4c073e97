// Package legacy talks to the historical v1 KoreanBots API. Results are
// untyped: each call hands back the envelope's data field as a gjson.Result
// so callers can pick fields by path without declaring structs.
//
// New code should use the typed client in the root package.
package legacy

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
	"github.com/koreanbots/koreanbots-go/internal/ratelimit"
)

// DefaultBaseURL is the v1 API origin.
const DefaultBaseURL = "https://api.koreanbots.dev"

// RateLimit is the rate-limit snapshot taken from response headers.
type RateLimit = ratelimit.RateLimit

// Result is one decoded response.
type Result struct {
	Code      int          // envelope code, or the HTTP status when absent
	Data      gjson.Result // the envelope's data field
	Raw       gjson.Result // the whole envelope
	RateLimit RateLimit
}

// Client is a v1 API client. It is safe for concurrent use.
type Client struct {
	rest    *resty.Client
	token   string
	baseURL string
}

type settings struct {
	baseURL string
	timeout time.Duration
	hc      *http.Client
}

// Option configures a Client.
type Option func(*settings)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(s *settings) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds each request. It wins over the timeout of a client
// given to WithHTTPClient; without either the default is 30s.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithHTTPClient sends requests through a copy of hc, keeping its
// transport, timeout, redirect policy and cookie jar.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) { s.hc = hc }
}

// New returns a v1 client. token is only needed for Voted and PostServers.
func New(token string, opts ...Option) *Client {
	s := settings{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&s)
	}

	rest := resty.New().SetTimeout(30 * time.Second)
	if s.hc != nil {
		cp := *s.hc
		rest = resty.NewWithClient(&cp)
	}
	if s.timeout > 0 {
		rest.SetTimeout(s.timeout)
	}
	rest.SetBaseURL(s.baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{rest: rest, token: token, baseURL: s.baseURL}
}

// Bots lists bots, 9 per page. Pages below 1 request the first page.
func (c *Client) Bots(ctx context.Context, page int) (*Result, error) {
	return c.get(ctx, "bots", c.rest.R().
		SetQueryParam("page", pageParam(page)), "/bots/get")
}

// Bot fetches one bot by id.
func (c *Client) Bot(ctx context.Context, id string) (*Result, error) {
	if id == "" {
		return nil, kberrors.NewConfigError("bot", errMissing("id"))
	}
	return c.get(ctx, "bot", c.rest.R().
		SetPathParam("id", id), "/bots/get/{id}")
}

// Voted reports whether userID voted for the token's bot.
func (c *Client) Voted(ctx context.Context, userID string) (*Result, error) {
	const op = "voted"
	if c.token == "" {
		return nil, kberrors.NewConfigError(op, errMissing("token"))
	}
	if userID == "" {
		return nil, kberrors.NewConfigError(op, errMissing("user id"))
	}
	return c.get(ctx, op, c.rest.R().
		SetHeader("token", c.token).
		SetPathParam("userID", userID), "/bots/voted/{userID}")
}

// PostServers updates the server count of the token's bot.
func (c *Client) PostServers(ctx context.Context, servers int) (*Result, error) {
	const op = "post servers"
	if c.token == "" {
		return nil, kberrors.NewConfigError(op, errMissing("token"))
	}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("token", c.token).
		SetBody(map[string]int{"servers": servers}).
		Post("/bots/servers")
	return decode(op, resp, err)
}

// BotsByCategory lists bots in category, e.g. "관리".
func (c *Client) BotsByCategory(ctx context.Context, category string, page int) (*Result, error) {
	if category == "" {
		return nil, kberrors.NewConfigError("bots by category", errMissing("category"))
	}
	return c.get(ctx, "bots by category", c.rest.R().
		SetPathParam("category", category).
		SetQueryParam("page", pageParam(page)), "/bots/category/{category}")
}

// SearchBots runs a free-text search.
func (c *Client) SearchBots(ctx context.Context, query string, page int) (*Result, error) {
	if query == "" {
		return nil, kberrors.NewConfigError("search bots", errMissing("query"))
	}
	return c.get(ctx, "search bots", c.rest.R().
		SetQueryParams(map[string]string{"q": query, "page": pageParam(page)}), "/bots/search")
}

// ServerWidgetURL returns the server-count badge URL for id.
func (c *Client) ServerWidgetURL(id string) string {
	return c.baseURL + "/widget/servers/" + url.PathEscape(id) + ".svg"
}

// VoteWidgetURL returns the vote-count badge URL for id.
func (c *Client) VoteWidgetURL(id string) string {
	return c.baseURL + "/widget/votes/" + url.PathEscape(id) + ".svg"
}

// ProbeRateLimit requests the API root and reports the rate-limit headers.
// Any HTTP status is accepted; only transport failures are errors.
func (c *Client) ProbeRateLimit(ctx context.Context) (RateLimit, error) {
	resp, err := c.rest.R().SetContext(ctx).Get("/")
	if err != nil {
		return ratelimit.FromHeaders(nil), kberrors.NewNetworkError("probe rate limit", err)
	}
	return ratelimit.FromHeaders(resp.Header()), nil
}

func (c *Client) get(ctx context.Context, op string, req *resty.Request, path string) (*Result, error) {
	resp, err := req.SetContext(ctx).Get(path)
	return decode(op, resp, err)
}

// decode classifies resp the same way the typed client does.
func decode(op string, resp *resty.Response, err error) (*Result, error) {
	if err != nil {
		return nil, kberrors.NewNetworkError(op, err)
	}
	body := resp.Body()
	rl := ratelimit.FromHeaders(resp.Header())

	if !gjson.ValidBytes(body) {
		if resp.IsError() {
			msg := strings.TrimSpace(string(body))
			return nil, kberrors.NewAPIError(op, resp.StatusCode(), resp.StatusCode(), msg, string(body), rl.Wait(time.Now()))
		}
		return nil, kberrors.NewDecodeError(op, resp.StatusCode(), string(body), errInvalidJSON)
	}

	raw := gjson.ParseBytes(body)
	code := resp.StatusCode()
	if v := raw.Get("code"); v.Exists() {
		code = int(v.Int())
	}
	if resp.IsError() || code >= 400 {
		status := resp.StatusCode()
		if !resp.IsError() {
			status = code
		}
		return nil, kberrors.NewAPIError(op, status, code, raw.Get("message").String(), string(body), rl.Wait(time.Now()))
	}
	return &Result{Code: code, Data: raw.Get("data"), Raw: raw, RateLimit: rl}, nil
}

func pageParam(page int) string {
	if page < 1 {
		page = 1
	}
	return strconv.Itoa(page)
}
