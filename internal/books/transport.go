package books

import (
	"net/http"
	"time"

	"whatshouldiread/internal/logging"
)

// LoggingTransport is an http.RoundTripper that logs outbound requests at debug level.
// The API key query parameter is redacted.
type LoggingTransport struct {
	Base http.RoundTripper
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	log := logging.Component("HTTP")
	start := time.Now()

	resp, err := base.RoundTrip(req)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("url", redactedURL(req)).Msg("outbound request failed")
		return resp, err
	}

	log.Debug().
		Str("method", req.Method).
		Str("url", redactedURL(req)).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("outbound request")
	return resp, nil
}

func redactedURL(req *http.Request) string {
	u := *req.URL
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
