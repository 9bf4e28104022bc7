package cartsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/cryptox"
)

// ExpiredFunc is called after a refresh has failed and the credential store
// has been cleared, or found unreadable and left alone. err is the refresh
// failure. It is not called when the session was logged out or replaced while
// the refresh was in flight.
type ExpiredFunc func(ctx context.Context, err error)

// Session represents an authenticated EventCart session.
// All Session request methods attach the current bearer token and recover
// from an expired token by refreshing it once.
type Session struct {
	client *SDKClient
	store  credstore.Store
	coord  *refreshCoordinator

	// mu guards token and gen and serialises writes to store.
	mu    sync.RWMutex
	token string
	gen   uint64 // bumped whenever credentials are set or cleared

	hooksMu sync.Mutex
	hooks   []ExpiredFunc
}

// NewSession creates a session backed by store. Call Load to pick up
// credentials persisted by an earlier process.
func (c *SDKClient) NewSession(store credstore.Store) *Session {
	s := &Session{client: c, store: store}
	s.coord = &refreshCoordinator{session: s}
	return s
}

// Client returns the underlying SDK client.
func (s *Session) Client() *SDKClient { return s.client }

// Store returns the credential store backing the session.
func (s *Session) Store() credstore.Store { return s.store }

// Load reads persisted credentials into the session. It returns the stored
// user, or nil if the store is empty.
func (s *Session) Load(ctx context.Context) (*User, error) {
	creds, err := s.store.Get(ctx)
	if errors.Is(err, credstore.ErrNotFound) {
		s.setToken("")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	// A profile this client cannot use is as good as none.
	var user User
	if err := decodeStoredUser(creds, &user); err != nil {
		s.client.Logger.Warn("discarding unreadable stored session", "err", err)
		if err := s.ClearCredentials(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	s.setToken(creds.Token)
	return &user, nil
}

func decodeStoredUser(creds credstore.Credentials, user *User) error {
	if err := creds.DecodeUser(user); err != nil {
		return err
	}
	return user.validate()
}

// Token returns the in-memory bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// SetCredentials writes user and token through to the store and then makes
// token the session's bearer. Both are required.
func (s *Session) SetCredentials(ctx context.Context, user *User, token string) error {
	if user == nil || token == "" {
		return credstore.ErrIncomplete
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, raw, token); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	s.gen++
	s.token = token
	return nil
}

// ClearCredentials empties the store and drops the in-memory token. A refresh
// in flight at the time is discarded when it completes.
func (s *Session) ClearCredentials(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

// clearIfCurrent clears the credentials unless they were set or cleared since
// gen was read. It reports whether it cleared them.
func (s *Session) clearIfCurrent(ctx context.Context, gen uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false, nil
	}
	return true, s.clearLocked(ctx)
}

func (s *Session) clearLocked(ctx context.Context) error {
	s.gen++
	s.token = ""
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *Session) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// OnSessionExpired registers fn to run whenever a refresh fails.
// Hooks run in registration order on the goroutine that ran the refresh.
func (s *Session) OnSessionExpired(fn ExpiredFunc) {
	s.hooksMu.Lock()
	s.hooks = append(s.hooks, fn)
	s.hooksMu.Unlock()
}

func (s *Session) notifyExpired(ctx context.Context, err error) {
	s.hooksMu.Lock()
	hooks := make([]ExpiredFunc, len(s.hooks))
	copy(hooks, s.hooks)
	s.hooksMu.Unlock()

	for _, fn := range hooks {
		fn(ctx, err)
	}
}

// ============================================================================
// Authentication
// ============================================================================

// Login authenticates with email and password and persists the result.
func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.SetCredentials(ctx, &resp.User, resp.AccessToken); err != nil {
		return nil, err
	}

	s.client.Logger.Info("login", "user_id", resp.User.ID, "token", cryptox.FingerprintToken(resp.AccessToken))
	return &resp.User, nil
}

// Register creates an account, logs in as it and persists the result.
func (s *Session) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.SetCredentials(ctx, &resp.User, resp.AccessToken); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// VerifyToken reports whether the backend still accepts the session's token.
// A session without a token is reported invalid without a network call.
func (s *Session) VerifyToken(ctx context.Context) (bool, error) {
	token := s.Token()
	if token == "" {
		return false, nil
	}
	return s.client.VerifyToken(ctx, token)
}

// Refresh exchanges the stored token for a new one. If a refresh is already
// in flight it waits for that one instead of starting another. On failure the
// store is cleared and the session-expired hooks run.
func (s *Session) Refresh(ctx context.Context) error {
	_, err := s.coord.handle(ctx, nil, nil)
	return err
}

// Logout ends the session. The backend call is best effort; the local
// credentials are always cleared. Calling Logout on a logged-out session is
// not an error.
func (s *Session) Logout(ctx context.Context) error {
	if token := s.Token(); token != "" {
		if err := s.client.Logout(ctx, token); err != nil {
			s.client.Logger.Warn("logout request failed", "err", err)
		}
	}
	return s.ClearCredentials(ctx)
}

// ============================================================================
// Authenticated requests
// ============================================================================

// Do sends an authenticated JSON request. in, when non-nil, is encoded as the
// body; out, when non-nil, receives the decoded response. A 401 triggers the
// refresh protocol.
func (s *Session) Do(ctx context.Context, method, path string, in, out any) error {
	r, err := newRequest(method, path, in)
	if err != nil {
		return err
	}
	body, err := s.execute(ctx, r)
	if err != nil {
		return err
	}
	return decodeJSON(r.op(), body, out)
}

// Get is Do with GET.
func (s *Session) Get(ctx context.Context, path string, out any) error {
	return s.Do(ctx, http.MethodGet, path, nil, out)
}

// Post is Do with POST.
func (s *Session) Post(ctx context.Context, path string, in, out any) error {
	return s.Do(ctx, http.MethodPost, path, in, out)
}

// Put is Do with PUT.
func (s *Session) Put(ctx context.Context, path string, in, out any) error {
	return s.Do(ctx, http.MethodPut, path, in, out)
}

// Delete is Do with DELETE.
func (s *Session) Delete(ctx context.Context, path string, out any) error {
	return s.Do(ctx, http.MethodDelete, path, nil, out)
}

// execute sends r with the current token and hands an eligible 401 to the
// refresh coordinator.
func (s *Session) execute(ctx context.Context, r *request) ([]byte, error) {
	r.token = s.Token()
	body, err := s.client.send(ctx, r)
	if err == nil || r.retried || !IsUnauthorized(err) {
		return body, err
	}
	return s.coord.handle(ctx, r, err)
}

// replay re-sends r with the current token. It is never handed back to the
// coordinator, so a second 401 is returned as is.
func (s *Session) replay(ctx context.Context, r *request) ([]byte, error) {
	r.retried = true
	r.token = s.Token()
	body, err := s.client.send(ctx, r)
	s.client.Metrics.observeReplay(err)
	return body, err
}

var (
	// errStoreUnreadable marks a refresh that failed because the store could
	// not be read. The credentials are left in place.
	errStoreUnreadable = errors.New("credential store unreadable")

	// errSessionReplaced marks a refresh whose session was logged out or
	// replaced by a new login before the new token arrived.
	errSessionReplaced = errors.New("session replaced during refresh")
)

// refresh reads the stored credentials and exchanges the token. The result
// is only written if the credentials are still those of generation gen. It
// never clears the store on failure; the coordinator does that.
func (s *Session) refresh(ctx context.Context, gen uint64) error {
	creds, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return &AuthError{Reason: ErrNoCredentials}
		}
		return &AuthError{Reason: ErrNoCredentials, Err: fmt.Errorf("%w: %w", errStoreUnreadable, err)}
	}

	var user User
	if err := decodeStoredUser(creds, &user); err != nil {
		return &AuthError{Reason: ErrNoCredentials, Err: err}
	}

	resp, err := s.client.RefreshToken(ctx, user.Email, creds.Token)
	if err != nil {
		return &AuthError{Reason: ErrSessionExpired, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return &AuthError{Reason: ErrSessionExpired, Err: errSessionReplaced}
	}
	if err := s.store.Set(ctx, creds.User, resp.AccessToken); err != nil {
		return &AuthError{Reason: ErrSessionExpired, Err: fmt.Errorf("failed to store refreshed token: %w", err)}
	}
	s.token = resp.AccessToken

	s.client.Logger.Info("token refreshed",
		"old", cryptox.FingerprintToken(creds.Token),
		"new", cryptox.FingerprintToken(resp.AccessToken),
	)
	return nil
}
