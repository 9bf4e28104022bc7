package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/jwtx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	clock  *testClock
	store  *store.Store
	tokens *TokenService
	auth   *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	st := store.New(clock.Now)

	signer, err := jwtx.NewHS256([]byte(strings.Repeat("k", 32)), "eventcart-test", jwtx.WithClock(clock.Now))
	require.NoError(t, err)

	tokens := &TokenService{
		Signer:       signer,
		Store:        st,
		AccessTTL:    time.Minute,
		RefreshGrace: time.Hour,
		Now:          clock.Now,
	}
	return &fixture{
		clock:  clock,
		store:  st,
		tokens: tokens,
		auth:   &AuthService{Store: st, Tokens: tokens},
	}
}

var registerAda = cartsdk.RegisterRequest{
	Email:     "ada@example.com",
	Password:  "correct horse",
	FirstName: "Ada",
	LastName:  "Byron",
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.auth.Register(ctx, registerAda)
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "Ada Byron", resp.User.FullName())
	require.False(t, resp.User.IsAdmin)

	_, err = f.auth.Register(ctx, registerAda)
	require.ErrorIs(t, err, store.ErrEmailTaken)

	_, err = f.auth.Login(ctx, "ada@example.com", "wrong password")
	require.ErrorIs(t, err, store.ErrInvalidLogin)

	_, err = f.auth.Login(ctx, "nobody@example.com", "correct horse")
	require.ErrorIs(t, err, store.ErrInvalidLogin)

	login, err := f.auth.Login(ctx, "ADA@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, login.User.ID)
	require.True(t, f.tokens.Verify(login.AccessToken))
}

func TestEnsureAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	admin, err := f.auth.EnsureAdmin(ctx, "admin@eventcart.local", "Admin123!")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)

	again, err := f.auth.EnsureAdmin(ctx, "admin@eventcart.local", "other")
	require.NoError(t, err)
	require.Equal(t, admin.ID, again.ID)

	resp, err := f.auth.Login(ctx, "admin@eventcart.local", "Admin123!")
	require.NoError(t, err)

	claims, err := f.tokens.Signer.Verify(resp.AccessToken)
	require.NoError(t, err)
	require.True(t, claims.IsAdmin)
	require.Equal(t, admin.ID, claims.Subject)
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, string) {
		f := newFixture(t)
		resp, err := f.auth.Register(ctx, registerAda)
		require.NoError(t, err)
		return f, resp.AccessToken
	}

	t.Run("expired token within grace", func(t *testing.T) {
		f, old := setup(t)
		f.clock.Advance(10 * time.Minute)
		require.False(t, f.tokens.Verify(old))

		fresh, err := f.tokens.Refresh(ctx, "ada@example.com", old)
		require.NoError(t, err)
		require.True(t, f.tokens.Verify(fresh))

		_, err = f.tokens.Refresh(ctx, "ada@example.com", old)
		require.ErrorIs(t, err, ErrTokenRevoked, "old token is single use")
	})

	t.Run("concurrent exchanges of one token", func(t *testing.T) {
		f, old := setup(t)
		f.clock.Advance(10 * time.Minute)

		const n = 16
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			won  int
			lost int
		)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.tokens.Refresh(ctx, "ada@example.com", old)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					won++
					return
				}
				assert.ErrorIs(t, err, ErrTokenRevoked)
				lost++
			}()
		}
		wg.Wait()

		require.Equal(t, 1, won)
		require.Equal(t, n-1, lost)
	})

	t.Run("beyond grace", func(t *testing.T) {
		f, old := setup(t)
		f.clock.Advance(2 * time.Hour)

		_, err := f.tokens.Refresh(ctx, "ada@example.com", old)
		require.ErrorIs(t, err, ErrRefreshExpired)
	})

	t.Run("email mismatch", func(t *testing.T) {
		f, old := setup(t)
		_, err := f.tokens.Refresh(ctx, "eve@example.com", old)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("forged token", func(t *testing.T) {
		f, _ := setup(t)
		_, err := f.tokens.Refresh(ctx, "ada@example.com", "not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRevoke(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.auth.Register(ctx, registerAda)
	require.NoError(t, err)

	f.tokens.Revoke(ctx, "garbage")
	require.True(t, f.tokens.Verify(resp.AccessToken))

	f.tokens.Revoke(ctx, resp.AccessToken)
	require.False(t, f.tokens.Verify(resp.AccessToken))

	hk := NewHousekeepingService(f.store, slogx.Discard(), 0)
	require.Equal(t, 10*time.Minute, hk.Interval)
	require.Zero(t, hk.Cleanup(ctx))

	// exp (1m) + grace (1h)
	f.clock.Advance(2 * time.Hour)
	require.Equal(t, 1, hk.Cleanup(ctx))
}

func TestHousekeepingStartStop(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	hk := NewHousekeepingService(f.store, slogx.Discard(), time.Millisecond)
	hk.Start()
	hk.Stop()
}

func TestSeedCatalogueIsDeterministic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a := SeedCatalogue(ctx, store.New(nil), 5, 7, now)
	b := SeedCatalogue(ctx, store.New(nil), 5, 7, now)
	require.Len(t, a, 5)

	for i := range a {
		require.Equal(t, a[i].Title, b[i].Title)
		require.True(t, a[i].Price.Equal(b[i].Price))
		require.Equal(t, a[i].StartsAt, b[i].StartsAt)
		require.True(t, a[i].StartsAt.After(now))
		require.Contains(t, Categories, a[i].Category)
		require.Equal(t, a[i].Capacity, a[i].Available)
		require.NotEmpty(t, a[i].Items)
		require.False(t, a[i].Items[0].Optional, "ticket is mandatory")
	}

	st := store.New(nil)
	SeedCatalogue(ctx, st, 3, 1, now)
	_, total := st.ListEvents(ctx, store.EventFilter{})
	require.Equal(t, 3, total)
}
