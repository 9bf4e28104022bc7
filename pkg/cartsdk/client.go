package cartsdk

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

// SDKClient is a client for the EventCart API.
// It provides the unauthenticated auth endpoints and is the transport used by
// every Session created from it.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Limiter throttles outgoing requests when set. Callers block in Wait
	// until a token is available or their context ends.
	Limiter *rate.Limiter

	Logger  *slog.Logger
	Metrics *Metrics

	timeout time.Duration
}

// Option configures an SDKClient.
type Option func(*SDKClient)

// WithHTTPClient replaces the default HTTP client. The client's transport is
// used as is; request logging is only installed on the default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *SDKClient) { c.HTTPClient = hc }
}

// WithTimeout sets the timeout of the default HTTP client. Default 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *SDKClient) { c.timeout = d }
}

// WithRateLimit limits outgoing requests to rps per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *SDKClient) { c.Limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger sets the logger used for refresh transitions and request logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *SDKClient) { c.Logger = l }
}

// WithMetrics records request and refresh metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(c *SDKClient) { c.Metrics = m }
}

// NewSDKClient creates a new EventCart API client.
func NewSDKClient(baseURL string, opts ...Option) *SDKClient {
	c := &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout:   c.timeout,
			Transport: &slogx.Transport{Logger: c.Logger},
		}
	}
	return c
}
