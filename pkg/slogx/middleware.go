package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/eventcart/pkg/idx"
)

// RequestIDHeader carries the request ID between the SDK and the backend.
const RequestIDHeader = "X-Request-ID"

// HTTPMiddleware gives every request a logger tagged with its request ID and
// logs the outcome. The caller's X-Request-ID is reused and echoed back so
// client and server log lines can be joined.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = idx.New().String()
			}
			w.Header().Set(RequestIDHeader, reqID)

			ctx := WithRequestID(WithContext(r.Context(), base), reqID)
			logger := FromContext(ctx).With("method", r.Method, "path", r.URL.Path)
			ctx = WithContext(ctx, logger)

			rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "http_request",
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter

	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
