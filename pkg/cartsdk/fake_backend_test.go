package cartsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

// fakeBackend accepts exactly one bearer token and rotates it on refresh.
type fakeBackend struct {
	srv *httptest.Server

	mu            sync.Mutex
	validToken    string
	nextToken     string
	refreshStatus int           // non-zero makes refresh fail with this status
	refreshGate   chan struct{} // when set, refresh blocks until closed
	refreshReqs   []RefreshRequest
	seen          []seenRequest
	routes        map[string]http.HandlerFunc
}

type seenRequest struct {
	method string
	path   string
	auth   string
	status int
}

func newFakeBackend(t *testing.T, validToken, nextToken string) *fakeBackend {
	t.Helper()

	fb := &fakeBackend{
		validToken: validToken,
		nextToken:  nextToken,
		routes:     map[string]http.HandlerFunc{},
	}
	fb.srv = httptest.NewServer(fb)
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/auth/refresh-token" {
		fb.serveRefresh(w, r)
		return
	}

	fb.mu.Lock()
	valid := fb.validToken
	route := fb.routes[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	auth := r.Header.Get("Authorization")
	if auth != "Bearer "+valid {
		fb.record(r, auth, http.StatusUnauthorized)
		writeTestJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized", "message": "token expired"})
		return
	}

	fb.record(r, auth, http.StatusOK)
	if route != nil {
		route(w, r)
		return
	}
	if r.URL.Path == "/cart" {
		writeTestJSON(w, http.StatusOK, map[string]any{"id": "cart-1", "items": []any{}, "total": "0"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (fb *fakeBackend) serveRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	fb.mu.Lock()
	fb.refreshReqs = append(fb.refreshReqs, req)
	gate := fb.refreshGate
	fb.mu.Unlock()

	if gate != nil {
		<-gate
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	if fb.refreshStatus != 0 {
		writeTestJSON(w, fb.refreshStatus, map[string]string{"error": "refresh_failed"})
		return
	}
	fb.validToken = fb.nextToken
	writeTestJSON(w, http.StatusOK, map[string]string{"access_token": fb.nextToken})
}

func (fb *fakeBackend) record(r *http.Request, auth string, status int) {
	fb.mu.Lock()
	fb.seen = append(fb.seen, seenRequest{method: r.Method, path: r.URL.Path, auth: auth, status: status})
	fb.mu.Unlock()
}

func (fb *fakeBackend) refreshCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.refreshReqs)
}

func (fb *fakeBackend) refreshRequests() []RefreshRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RefreshRequest(nil), fb.refreshReqs...)
}

func (fb *fakeBackend) requests() []seenRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]seenRequest, len(fb.seen))
	copy(out, fb.seen)
	return out
}

// gateRefresh makes refresh calls block until the returned channel is closed.
func (fb *fakeBackend) gateRefresh() chan struct{} {
	gate := make(chan struct{})
	fb.mu.Lock()
	fb.refreshGate = gate
	fb.mu.Unlock()
	return gate
}

func (fb *fakeBackend) failRefresh(status int) {
	fb.mu.Lock()
	fb.refreshStatus = status
	fb.mu.Unlock()
}

func (fb *fakeBackend) handle(pattern string, h http.HandlerFunc) {
	fb.mu.Lock()
	fb.routes[pattern] = h
	fb.mu.Unlock()
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var testUser = User{ID: "u1", Email: "a@b.com", FirstName: "Ada", LastName: "Byron"}

// newTestSession returns a session against fb whose store holds testUser and
// token. An empty token leaves the store empty.
func newTestSession(t *testing.T, fb *fakeBackend, token string) (*Session, *credstore.Memory) {
	t.Helper()

	store := credstore.NewMemory()
	client := NewSDKClient(fb.srv.URL, WithLogger(slogx.Discard()))
	s := client.NewSession(store)

	if token != "" {
		require.NoError(t, s.SetCredentials(context.Background(), &testUser, token))
	}
	return s, store
}

func queueLen(s *Session) int {
	s.coord.mu.Lock()
	defer s.coord.mu.Unlock()
	return len(s.coord.queue)
}

func authHeaders(reqs []seenRequest, prefix string) []string {
	var out []string
	for _, r := range reqs {
		if strings.HasPrefix(r.path, prefix) {
			out = append(out, r.auth)
		}
	}
	return out
}
