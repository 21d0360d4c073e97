package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KOREANBOTS_TOKEN", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
	assert.Zero(t, cfg.RateLimit)
	assert.Empty(t, cfg.Token)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KOREANBOTS_TOKEN", "secret")
	t.Setenv("KOREANBOTS_BASE_URL", "http://localhost:8080/api/v2")
	t.Setenv("KOREANBOTS_TIMEOUT", "5s")
	t.Setenv("KOREANBOTS_DEBUG", "true")
	t.Setenv("KOREANBOTS_RATE_LIMIT", "1.5")
	t.Setenv("KOREANBOTS_RATE_BURST", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "http://localhost:8080/api/v2", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 1.5, cfg.RateLimit)
	assert.Equal(t, 3, cfg.RateBurst)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("KOREANBOTS_BASE_URL", "koreanbots.dev")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("KOREANBOTS_BASE_URL", DefaultBaseURL)
	t.Setenv("KOREANBOTS_TIMEOUT", "0s")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("KOREANBOTS_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestParseBaseURL(t *testing.T) {
	t.Parallel()
	u, err := ParseBaseURL(DefaultBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "koreanbots.dev", u.Host)

	for _, bad := range []string{"", "ftp://x", "https://x/api?x=1", "https://x/#frag", "://"} {
		_, err := ParseBaseURL(bad)
		assert.Errorf(t, err, "expected error for %q", bad)
	}
}
