package koreanbots

import (
	"net/http"
	"net/http/httputil"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// debugTransport logs every request and response at debug level, tagged
// with a request_id so a pair can be matched in interleaved output.
//
// It wraps the authorization transport, so dumps are taken before the
// token is attached. Bodies are logged verbatim; keep it out of production.
//
// Enable with KOREANBOTS_DEBUG=true, DEBUG=true or WithDebugLogging(true).
type debugTransport struct {
	base   http.RoundTripper
	logger *zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := dt.base
	if base == nil {
		base = http.DefaultTransport
	}
	l := dt.logger.With().
		Str("request_id", uuid.NewString()).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Logger()

	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		l.Debug().Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if err != nil {
		l.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		l.Debug().
			Int("status_code", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Str("response_dump", string(respDump)).
			Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether KOREANBOTS_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("KOREANBOTS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
