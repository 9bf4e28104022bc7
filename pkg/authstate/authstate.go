// Package authstate exposes the signed-in state of an EventCart session and
// mediates login and logout.
//
// A Provider owns no credentials itself. It reads and writes through the
// Session's credential store and publishes a State snapshot to subscribers
// after every change.
package authstate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
)

// ErrMissingCredentials is returned by Login when the user or token is absent.
// Nothing is written in that case.
var ErrMissingCredentials = errors.New("authstate: user and token are required")

// MessageSessionExpired is published when a refresh fails.
const MessageSessionExpired = "session expired"

// State is a snapshot of the provider.
type State struct {
	User            *cartsdk.User
	IsAuthenticated bool
	Loading         bool
	AuthChecked     bool
	Message         string
}

// Provider is the process-wide auth state for one Session.
type Provider struct {
	session *cartsdk.Session
	logger  *slog.Logger

	mu          sync.Mutex
	user        *cartsdk.User
	loading     bool
	authChecked bool
	message     string

	subsMu sync.Mutex
	subs   map[int]chan State
	nextID int
}

// NewProvider creates a provider for session and registers it to publish the
// logged-out state when the session expires.
func NewProvider(session *cartsdk.Session, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provider{
		session: session,
		logger:  logger,
		loading: true,
		subs:    make(map[int]chan State),
	}
	session.OnSessionExpired(p.onExpired)
	return p
}

// State returns the current snapshot. IsAuthenticated is recomputed against
// the store on every call.
func (p *Provider) State(ctx context.Context) State {
	p.mu.Lock()
	st := State{
		User:        p.user,
		Loading:     p.loading,
		AuthChecked: p.authChecked,
		Message:     p.message,
	}
	p.mu.Unlock()

	st.IsAuthenticated = p.authenticated(ctx, st.User)
	return st
}

// IsAuthenticated reports whether there is a user in memory and a token in
// the store. The store is consulted every time so that credentials cleared
// elsewhere are noticed.
func (p *Provider) IsAuthenticated(ctx context.Context) bool {
	p.mu.Lock()
	user := p.user
	p.mu.Unlock()
	return p.authenticated(ctx, user)
}

func (p *Provider) authenticated(ctx context.Context, user *cartsdk.User) bool {
	if user == nil {
		return false
	}
	creds, err := p.session.Store().Get(ctx)
	return err == nil && creds.Token != ""
}

// Init restores the stored session. The stored user is published straight
// away; the token is then checked with the backend and, if rejected, refreshed
// once. If the refresh fails the state is cleared.
func (p *Provider) Init(ctx context.Context) error {
	user, err := p.session.Load(ctx)
	if err != nil {
		p.finish(nil, "")
		return fmt.Errorf("failed to load session: %w", err)
	}
	if user == nil {
		p.finish(nil, "")
		return nil
	}

	p.mu.Lock()
	p.user = user
	p.loading = true
	p.mu.Unlock()
	p.publish(ctx)

	valid, err := p.session.VerifyToken(ctx)
	if err != nil {
		p.logger.Warn("token verification failed", "err", err)
	}
	if err == nil && valid {
		p.finish(user, "")
		p.publish(ctx)
		return nil
	}

	if err := p.session.Refresh(ctx); err != nil {
		p.logger.Info("stored session could not be refreshed", "err", err)
		// onExpired has already published the cleared state.
		p.mu.Lock()
		p.loading = false
		p.authChecked = true
		p.mu.Unlock()
		p.publish(ctx)
		return nil
	}

	p.finish(user, "")
	p.publish(ctx)
	return nil
}

// Login installs user and token as the signed-in session. Either argument
// missing fails with ErrMissingCredentials and changes nothing.
func (p *Provider) Login(ctx context.Context, user *cartsdk.User, token string) error {
	if user == nil || token == "" {
		return ErrMissingCredentials
	}
	if err := p.session.SetCredentials(ctx, user, token); err != nil {
		return err
	}

	p.finish(user, "")
	p.publish(ctx)
	return nil
}

// LoginWithPassword authenticates against the backend and then logs in.
func (p *Provider) LoginWithPassword(ctx context.Context, email, password string) (*cartsdk.User, error) {
	resp, err := p.session.Client().Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := p.Login(ctx, &resp.User, resp.AccessToken); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout clears the session and publishes the logged-out state. It is safe to
// call repeatedly.
func (p *Provider) Logout(ctx context.Context) error {
	err := p.session.Logout(ctx)

	p.finish(nil, "")
	p.publish(ctx)
	return err
}

// Subscribe returns a channel that receives a snapshot after every change,
// starting with the current one. Slow subscribers only see the latest state.
// Call the returned func to unsubscribe.
func (p *Provider) Subscribe(ctx context.Context) (<-chan State, func()) {
	ch := make(chan State, 1)
	ch <- p.State(ctx)

	p.subsMu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = ch
	p.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.subsMu.Lock()
			delete(p.subs, id)
			p.subsMu.Unlock()
			close(ch)
		})
	}
}

func (p *Provider) onExpired(ctx context.Context, err error) {
	p.logger.Warn("session expired", "err", err)
	p.finish(nil, MessageSessionExpired)
	p.publish(ctx)
}

// finish records the outcome of an auth transition.
func (p *Provider) finish(user *cartsdk.User, message string) {
	p.mu.Lock()
	p.user = user
	p.loading = false
	p.authChecked = true
	p.message = message
	p.mu.Unlock()
}

func (p *Provider) publish(ctx context.Context) {
	st := p.State(ctx)

	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	for _, ch := range p.subs {
		// Drop a stale snapshot so the newest always fits.
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}
