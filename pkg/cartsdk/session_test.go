package cartsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

func TestLoginPersistsCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(slogx.RequestIDHeader))

		var req LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "hunter22" {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_credentials"})
			return
		}
		writeTestJSON(w, http.StatusOK, AuthResponse{AccessToken: "tok1", User: testUser})
	}))
	t.Cleanup(srv.Close)

	store := credstore.NewMemory()
	s := NewSDKClient(srv.URL, WithLogger(slogx.Discard())).NewSession(store)

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), "a@b.com", "nope")
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, "invalid_credentials", httpErr.Code)
		require.Empty(t, s.Token())
	})

	t.Run("success", func(t *testing.T) {
		user, err := s.Login(context.Background(), "a@b.com", "hunter22")
		require.NoError(t, err)
		require.Equal(t, "Ada Byron", user.FullName())

		creds, err := store.Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, "tok1", creds.Token)

		var stored User
		require.NoError(t, creds.DecodeUser(&stored))
		require.Equal(t, testUser, stored)
		require.Equal(t, "tok1", s.Token())
	})
}

func TestRequestIDFromContextIsForwarded(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend(t, "tok1", "tok2")
	seen := make(chan string, 1)
	fb.handle("GET /wishlist", func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(slogx.RequestIDHeader)
		writeTestJSON(w, http.StatusOK, map[string]any{"items": []any{}})
	})
	s, _ := newTestSession(t, fb, "tok1")

	ctx := slogx.WithRequestID(context.Background(), "req-from-caller")
	require.NoError(t, s.Get(ctx, "/wishlist", nil))
	require.Equal(t, "req-from-caller", <-seen)
}

func TestLoginValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	t.Cleanup(srv.Close)

	c := NewSDKClient(srv.URL, WithLogger(slogx.Discard()))
	_, err := c.Login(context.Background(), "not-an-email", "")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "must be a valid email address", vErr.Fields["email"])
	require.Equal(t, "is required", vErr.Fields["password"])
	require.False(t, called)
}

func TestMalformedLoginResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]any{"user": testUser})
	}))
	t.Cleanup(srv.Close)

	store := credstore.NewMemory()
	s := NewSDKClient(srv.URL, WithLogger(slogx.Discard())).NewSession(store)

	_, err := s.Login(context.Background(), "a@b.com", "hunter22")
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Error(), "access_token")

	_, err = store.Get(context.Background())
	require.ErrorIs(t, err, credstore.ErrNotFound)
}

func TestNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewSDKClient(url, WithLogger(slogx.Discard()))
	_, err := c.VerifyToken(context.Background(), "tok1")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, "POST /auth/verify-token", netErr.Op)
}

func TestSetCredentialsWritesBoth(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend(t, "tok1", "tok2")
	s, store := newTestSession(t, fb, "")

	require.ErrorIs(t, s.SetCredentials(context.Background(), nil, "tok1"), credstore.ErrIncomplete)
	require.ErrorIs(t, s.SetCredentials(context.Background(), &testUser, ""), credstore.ErrIncomplete)
	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, credstore.ErrNotFound)

	require.NoError(t, s.SetCredentials(context.Background(), &testUser, "tok1"))
	creds, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok1", creds.Token)
	require.JSONEq(t, `{"id":"u1","email":"a@b.com","first_name":"Ada","last_name":"Byron","is_admin":false}`, string(creds.User))
}

func TestLoadRestoresToken(t *testing.T) {
	t.Parallel()

	store := credstore.NewMemory()
	raw, err := json.Marshal(testUser)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), raw, "tok9"))

	s := NewSDKClient("http://unused", WithLogger(slogx.Discard())).NewSession(store)
	user, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "tok9", s.Token())

	empty := NewSDKClient("http://unused").NewSession(credstore.NewMemory())
	user, err = empty.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, user)
	require.Empty(t, empty.Token())
}

func TestLoadDiscardsUnusableUser(t *testing.T) {
	t.Parallel()

	for name, raw := range map[string]string{
		"wrong field types": `{"id":5,"email":"a@b.com"}`,
		"missing id":        `{"email":"a@b.com"}`,
		"missing email":     `{"id":"u1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := credstore.NewMemory()
			require.NoError(t, store.Set(context.Background(), []byte(raw), "tok1"))

			s := NewSDKClient("http://unused", WithLogger(slogx.Discard())).NewSession(store)
			user, err := s.Load(context.Background())
			require.NoError(t, err)
			require.Nil(t, user)
			require.Empty(t, s.Token())

			_, err = store.Get(context.Background())
			require.ErrorIs(t, err, credstore.ErrNotFound)
		})
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend(t, "tok1", "tok2")
	s, store := newTestSession(t, fb, "tok1")

	for range 2 {
		require.NoError(t, s.Logout(context.Background()))
		_, err := store.Get(context.Background())
		require.ErrorIs(t, err, credstore.ErrNotFound)
		require.Empty(t, s.Token())
	}

	// Only the first call had a token to revoke.
	logouts := authHeaders(fb.requests(), "/auth/logout")
	require.Equal(t, []string{"Bearer tok1"}, logouts)
}

func TestLogoutClearsEvenIfBackendFails(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend(t, "other", "tok2")
	s, store := newTestSession(t, fb, "tok1")

	require.NoError(t, s.Logout(context.Background()))
	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, credstore.ErrNotFound)
	require.Equal(t, 0, fb.refreshCount())
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Token {
		case "good":
			writeTestJSON(w, http.StatusOK, map[string]bool{"valid": true})
		case "bad":
			writeTestJSON(w, http.StatusOK, map[string]bool{"valid": false})
		default:
			writeTestJSON(w, http.StatusOK, map[string]string{})
		}
	}))
	t.Cleanup(srv.Close)

	c := NewSDKClient(srv.URL, WithLogger(slogx.Discard()))

	ok, err := c.VerifyToken(context.Background(), "good")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.VerifyToken(context.Background(), "bad")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = c.VerifyToken(context.Background(), "weird")
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)

	s := c.NewSession(credstore.NewMemory())
	ok, err = s.VerifyToken(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		var req RegisterRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeTestJSON(w, http.StatusCreated, AuthResponse{
			AccessToken: "tok1",
			User:        User{ID: "u2", Email: req.Email, FirstName: req.FirstName, LastName: req.LastName},
		})
	}))
	t.Cleanup(srv.Close)

	s := NewSDKClient(srv.URL, WithLogger(slogx.Discard())).NewSession(credstore.NewMemory())

	_, err := s.Register(context.Background(), RegisterRequest{Email: "c@d.com", Password: "short"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "password")
	require.Contains(t, vErr.Fields, "first_name")

	user, err := s.Register(context.Background(), RegisterRequest{
		Email: "c@d.com", Password: "long-enough", FirstName: "Cy", LastName: "Dee",
	})
	require.NoError(t, err)
	require.Equal(t, "u2", user.ID)
	require.Equal(t, "tok1", s.Token())
}

func TestFeatureEndpoints(t *testing.T) {
	t.Parallel()

	fb := newFakeBackend(t, "tok1", "tok2")
	s, _ := newTestSession(t, fb, "tok1")
	ctx := context.Background()

	event := Event{ID: "ev1", Title: "Jazz Night", Price: decimal.RequireFromString("49.50"), Available: 10}
	cart := Cart{ID: "cart-1", Items: []CartItem{{ID: "ci1", EventID: "ev1", Quantity: 2, UnitPrice: event.Price, Subtotal: decimal.RequireFromString("99")}}, Total: decimal.RequireFromString("99")}
	order := Order{ID: "o1", Status: OrderPending, Total: cart.Total}

	fb.handle("GET /events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "music", r.URL.Query().Get("category"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeTestJSON(w, http.StatusOK, EventList{Events: []Event{event}, Total: 1})
	})
	fb.handle("GET /events/ev1", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, event)
	})
	fb.handle("POST /cart/items", func(w http.ResponseWriter, r *http.Request) {
		var req AddCartItemRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ev1", req.EventID)
		writeTestJSON(w, http.StatusOK, cart)
	})
	fb.handle("PUT /cart/items/ci1", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, cart)
	})
	fb.handle("DELETE /cart/items/ci1", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, Cart{ID: "cart-1"})
	})
	fb.handle("POST /orders", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusCreated, order)
	})
	fb.handle("GET /orders", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, OrderList{Orders: []Order{order}})
	})
	fb.handle("GET /orders/o1", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, order)
	})
	fb.handle("GET /users/me/wishlist", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, Wishlist{Items: []WishlistItem{{EventID: "ev1"}}})
	})
	fb.handle("POST /users/me/wishlist", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, Wishlist{Items: []WishlistItem{{EventID: "ev1"}}})
	})
	fb.handle("GET /admin/users", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, UserList{Users: []User{testUser}})
	})
	fb.handle("GET /admin/orders", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, OrderList{Orders: []Order{order}})
	})
	fb.handle("PUT /admin/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		var req UpdateOrderStatusRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		o := order
		o.Status = req.Status
		writeTestJSON(w, http.StatusOK, o)
	})
	fb.handle("GET /admin/analytics", func(w http.ResponseWriter, _ *http.Request) {
		writeTestJSON(w, http.StatusOK, Analytics{TotalOrders: 1, Revenue: cart.Total})
	})

	events, err := s.ListEvents(ctx, ListEventsOptions{Category: "music", Limit: 5})
	require.NoError(t, err)
	require.Len(t, events.Events, 1)
	require.True(t, events.Events[0].Price.Equal(decimal.RequireFromString("49.5")))

	ev, err := s.GetEvent(ctx, "ev1")
	require.NoError(t, err)
	require.Equal(t, "Jazz Night", ev.Title)

	got, err := s.AddToCart(ctx, AddCartItemRequest{EventID: "ev1", Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 2, got.ItemCount())

	_, err = s.AddToCart(ctx, AddCartItemRequest{EventID: "ev1", Quantity: 0})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "quantity")

	_, err = s.UpdateCartItem(ctx, "ci1", 3)
	require.NoError(t, err)

	emptied, err := s.RemoveCartItem(ctx, "ci1")
	require.NoError(t, err)
	require.Zero(t, emptied.ItemCount())

	require.NoError(t, s.ClearCart(ctx))

	_, err = s.Checkout(ctx, CheckoutRequest{PaymentMethod: "bitcoin"})
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "payment_method")
	require.Contains(t, vErr.Fields, "shipping_address.line1")

	placed, err := s.Checkout(ctx, CheckoutRequest{
		ShippingAddress: Address{FullName: "Ada Byron", Line1: "1 Main St", City: "Perth", PostalCode: "6000", Country: "AU"},
		PaymentMethod:   PaymentCard,
	})
	require.NoError(t, err)
	require.Equal(t, OrderPending, placed.Status)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = s.GetOrder(ctx, "o1")
	require.NoError(t, err)

	w, err := s.GetWishlist(ctx)
	require.NoError(t, err)
	require.True(t, w.Contains("ev1"))

	_, err = s.AddToWishlist(ctx, "ev1")
	require.NoError(t, err)
	require.NoError(t, s.RemoveFromWishlist(ctx, "ev1"))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	all, err := s.ListAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	shipped, err := s.UpdateOrderStatus(ctx, "o1", OrderShipped)
	require.NoError(t, err)
	require.Equal(t, OrderShipped, shipped.Status)

	_, err = s.UpdateOrderStatus(ctx, "o1", "lost")
	require.ErrorAs(t, err, &vErr)

	a, err := s.GetAnalytics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, a.TotalOrders)

	require.Equal(t, 0, fb.refreshCount())
}
