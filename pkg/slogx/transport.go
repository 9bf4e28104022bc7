package slogx

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport is the client-side counterpart of HTTPMiddleware: an
// http.RoundTripper that logs every outgoing request at debug level.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := t.Logger
	if logger == nil {
		logger = FromContext(req.Context())
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)

	attrs := []any{
		"req_id", req.Header.Get(RequestIDHeader),
		"method", req.Method,
		"url", req.URL.Redacted(),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.Debug("http_client_request", append(attrs, "err", err)...)
		return nil, err
	}

	logger.Debug("http_client_request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
