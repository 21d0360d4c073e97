// Package config loads client settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultBaseURL is the v2 API origin.
const DefaultBaseURL = "https://koreanbots.dev/api/v2"

// Config holds the client configuration.
// Environment variables are parsed from the KOREANBOTS_ prefix.
type Config struct {
	// Token authorizes vote checks and stats updates; public reads work without it.
	Token string `envconfig:"TOKEN"`

	BaseURL string        `envconfig:"BASE_URL" default:"https://koreanbots.dev/api/v2"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Debug   bool          `envconfig:"DEBUG" default:"false"`

	// Client-side request budget; RateLimit <= 0 disables the limiter.
	RateLimit float64 `envconfig:"RATE_LIMIT" default:"0"`
	RateBurst int     `envconfig:"RATE_BURST" default:"1"`
}

// Load reads KOREANBOTS_* variables and validates them.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("KOREANBOTS", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if _, err := ParseBaseURL(c.BaseURL); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("KOREANBOTS_TIMEOUT must be > 0, got %s", c.Timeout)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("KOREANBOTS_RATE_BURST must be >= 1 when a rate limit is set")
	}
	return nil
}

// ParseBaseURL accepts absolute http(s) URLs without query or fragment.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: need an absolute http(s) URL", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("invalid base URL %q: query and fragment are not allowed", raw)
	}
	return u, nil
}
