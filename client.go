package koreanbots

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/koreanbots/koreanbots-go/internal/api"
	"github.com/koreanbots/koreanbots-go/internal/config"
	kberrors "github.com/koreanbots/koreanbots-go/internal/errors"
	"github.com/koreanbots/koreanbots-go/internal/ratelimit"
	"github.com/koreanbots/koreanbots-go/internal/shardqueue"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the v2 API origin used unless WithBaseURL overrides it.
const DefaultBaseURL = config.DefaultBaseURL

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is a blocking KoreanBots API client. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	baseURL string
	token   string // sent only to vote-check and stats endpoints
	http    *http.Client
	logger  zerolog.Logger
	limiter *ratelimit.Limiter
	debug   bool

	asyncCfg shardqueue.Config

	mu     sync.Mutex // guards async, exec and closed
	async  *Async
	exec   executor
	closed bool
}

// New constructs a Client. token may be empty when only public endpoints
// are used; vote checks and stats updates then fail with ErrMissingToken.
func New(token string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: mustParseDefault(),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransport()
	return c, nil
}

// NewFromEnv builds a Client from KOREANBOTS_* environment variables.
// opts are applied after the environment and win over it.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, kberrors.NewConfigError("load config", err)
	}
	envOpts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithHTTPTimeout(cfg.Timeout),
		WithDebugLogging(cfg.Debug),
	}
	if cfg.RateLimit > 0 {
		envOpts = append(envOpts, WithRateLimit(cfg.RateLimit, cfg.RateBurst))
	}
	return New(cfg.Token, append(envOpts, opts...)...)
}

// mustParseDefault panics only if the built-in base URL constant is broken.
func mustParseDefault() string {
	u, err := config.ParseBaseURL(config.DefaultBaseURL)
	if err != nil {
		panic(err)
	}
	return u.String()
}

// wrapTransport installs, from the outside in: the client-side limiter,
// debug logging, then the Authorization header. Debug dumps are taken
// before the token is attached.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	var rt http.RoundTripper = &authTransport{base: base, token: c.token}
	if c.debug {
		rt = &debugTransport{base: rt, logger: &c.logger}
	}
	if c.limiter != nil {
		rt = &limiterTransport{base: rt, limiter: c.limiter}
	}
	c.http.Transport = rt
}

// authTransport attaches the token to requests the API layer marked as
// authenticated. Public endpoints never see it.
type authTransport struct {
	base  http.RoundTripper
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" || !api.AuthRequired(req.Context()) {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", t.token)
	return t.base.RoundTrip(cloned)
}

// limiterTransport waits for the client-side budget before sending.
type limiterTransport struct {
	base    http.RoundTripper
	limiter *ratelimit.Limiter
}

func (t *limiterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// Close stops the async executor, if one was started, after draining the
// queued requests. Safe to call multiple times.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	ex := c.exec
	c.mu.Unlock()

	if ex != nil {
		ex.Stop()
	}
	return nil
}

func (c *Client) requireToken(op string) error {
	if c.token == "" {
		return kberrors.NewConfigError(op, ErrMissingToken)
	}
	return nil
}

// --------------------------------------------------------------------
// Bot operations - delegated to internal/api
// --------------------------------------------------------------------

// GetBot fetches a bot by id or vanity slug.
func (c *Client) GetBot(ctx context.Context, botID string) (*Response[Bot], error) {
	return api.GetBot(ctx, c.http, c.baseURL, botID)
}

// SearchBots searches bots by free text. A page below 1 requests page 1.
func (c *Client) SearchBots(ctx context.Context, query string, page int) (*Response[Data[Bot]], error) {
	return api.SearchBots(ctx, c.http, c.baseURL, query, page)
}

// ListBotsByVotes lists bots ranked by votes. A page below 1 requests page 1.
func (c *Client) ListBotsByVotes(ctx context.Context, page int) (*Response[Data[Bot]], error) {
	return api.ListBotsByVotes(ctx, c.http, c.baseURL, page)
}

// ListNewBots lists recently added bots.
func (c *Client) ListNewBots(ctx context.Context) (*Response[Data[Bot]], error) {
	return api.ListNewBots(ctx, c.http, c.baseURL)
}

// CheckVote reports whether userID voted for botID. Requires a token.
func (c *Client) CheckVote(ctx context.Context, botID, userID string) (*Response[VoteCheck], error) {
	if err := c.requireToken("check vote"); err != nil {
		return nil, err
	}
	return api.CheckVote(ctx, c.http, c.baseURL, botID, userID)
}

// UpdateStats posts a heartbeat with the server and/or shard count. Requires a token.
func (c *Client) UpdateStats(ctx context.Context, botID string, stats StatsUpdate) (*ResponseUpdate, error) {
	if err := c.requireToken("update stats"); err != nil {
		return nil, err
	}
	return api.UpdateStats(ctx, c.http, c.baseURL, botID, stats)
}

// UpdateServers posts the current server count.
func (c *Client) UpdateServers(ctx context.Context, botID string, servers int) (*ResponseUpdate, error) {
	return c.UpdateStats(ctx, botID, ServersUpdate(servers))
}

// UpdateShards posts the current shard count.
func (c *Client) UpdateShards(ctx context.Context, botID string, shards int) (*ResponseUpdate, error) {
	return c.UpdateStats(ctx, botID, ShardsUpdate(shards))
}

// --------------------------------------------------------------------
// User operations
// --------------------------------------------------------------------

// GetUser fetches a user profile including the bots they own.
func (c *Client) GetUser(ctx context.Context, userID string) (*Response[UserInfo], error) {
	return api.GetUser(ctx, c.http, c.baseURL, userID)
}

// --------------------------------------------------------------------
// Widgets
// --------------------------------------------------------------------

// WidgetURL builds the widget image URL for a bot without network I/O.
// q may be nil to let the service apply its defaults.
func (c *Client) WidgetURL(botID string, kind WidgetType, q *WidgetQuery) (string, error) {
	return api.WidgetURL(c.baseURL, botID, kind, q)
}

// ResolveWidgetURL requests the widget and returns the URL it was served
// from after redirects. The image itself is discarded.
func (c *Client) ResolveWidgetURL(ctx context.Context, botID string, kind WidgetType, q *WidgetQuery) (string, error) {
	return api.ResolveWidgetURL(ctx, c.http, c.baseURL, botID, kind, q)
}

// --------------------------------------------------------------------
// Async view
// --------------------------------------------------------------------

// Async returns the non-blocking view of the client. The executor behind it
// starts on first use and stops on Close.
func (c *Client) Async() *Async {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.async != nil {
		return c.async
	}

	cfg := c.asyncCfg
	logger := c.logger
	cfg.Logger = &logger
	cfg.ErrorHandler = func(err error) {
		var fe *futureError
		if errors.As(err, &fe) {
			fe.fail()
		}
		c.logger.Debug().Err(err).Msg("async request failed")
	}
	ex := shardqueue.NewShardExecutor(cfg)
	if c.closed {
		// Submissions on a closed client report ErrClosed.
		ex.Stop()
	}
	c.exec = ex
	c.async = &Async{client: c, exec: ex}
	return c.async
}
