package cartsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aussiebroadwan/eventcart/pkg/idx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// request is an outgoing call that can be replayed. token is the bearer the
// request was last sent with; retried is set once it has been replayed after
// a 401.
type request struct {
	method  string
	path    string
	body    []byte
	token   string
	retried bool
}

func (r *request) op() string { return r.method + " " + r.path }

// newRequest marshals in (when non-nil) into a replayable request.
func newRequest(method, path string, in any) (*request, error) {
	r := &request{method: method, path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r.body = b
	}
	return r, nil
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// send performs r once and returns the body of a 2xx response.
// Transport failures are *NetworkError, non-2xx responses are *HTTPError.
// The Authorization header is set only when r.token is non-empty.
func (c *SDKClient) send(ctx context.Context, r *request) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	reqID := slogx.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = idx.New().String()
	}
	req.Header.Set(slogx.RequestIDHeader, reqID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Metrics.observeRequest(r.method, 0, time.Since(start))
		return nil, &NetworkError{Op: r.op(), URL: req.URL.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.Metrics.observeRequest(r.method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &NetworkError{Op: r.op(), URL: req.URL.Redacted(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// call sends an unauthenticated JSON request and decodes the response.
func (c *SDKClient) call(ctx context.Context, method, path string, in, out any) error {
	r, err := newRequest(method, path, in)
	if err != nil {
		return err
	}
	body, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	return decodeJSON(r.op(), body, out)
}
