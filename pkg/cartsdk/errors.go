package cartsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ============================================================================
// Sentinels
// ============================================================================

var (
	// ErrNoCredentials means a refresh was needed but the credential store
	// held no usable token and profile. No network call was made.
	ErrNoCredentials = errors.New("no credentials")

	// ErrSessionExpired means the session could not be refreshed and has been
	// cleared. Callers should send the user back to the login screen.
	ErrSessionExpired = errors.New("session expired")
)

// ============================================================================
// NetworkError - transport failure, no response received
// ============================================================================

// NetworkError is returned when the server could not be reached.
type NetworkError struct {
	Op  string // e.g. "GET /cart"
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ============================================================================
// HTTPError - any non-2xx response
// ============================================================================

// HTTPError is returned for any response outside the 2xx range.
type HTTPError struct {
	Status int
	Body   []byte

	// Code and Message are filled from the JSON error body when present.
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("http %d: %s: %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("http %d: %s", e.Status, msg)
}

// IsUnauthorized reports whether err is a 401 HTTPError.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized
}

// errorBody covers the error shapes the backend emits.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// newHTTPError builds an HTTPError, extracting code and message from the body
// when it is JSON.
func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{Status: status, Body: body}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Code = eb.Error
		e.Message = eb.Message
		if e.Message == "" {
			e.Message = eb.Detail
		}
	} else if len(body) > 0 && len(body) <= 256 {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

// ============================================================================
// AuthError - refresh could not proceed or failed
// ============================================================================

// AuthError is returned when the session cannot be (re)authenticated.
// Reason is ErrNoCredentials or ErrSessionExpired; Err is the underlying
// cause. Both are reachable through errors.Is and errors.As.
type AuthError struct {
	Reason error
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "auth: " + e.Reason.Error()
	}
	return fmt.Sprintf("auth: %v: %v", e.Reason, e.Err)
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

// ============================================================================
// MalformedResponseError - a 2xx body that fails validation
// ============================================================================

// MalformedResponseError is returned when a successful response cannot be
// decoded or lacks required fields.
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response from %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %s", e.Op, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ============================================================================
// ValidationError - request payload rejected before sending
// ============================================================================

// ValidationError lists the fields of a request payload that failed
// validation. Nothing was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
