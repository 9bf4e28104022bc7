package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/eventcart/internal/devserver/service"
	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
	"github.com/aussiebroadwan/eventcart/pkg/jwtx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

const (
	adminEmail    = "admin@eventcart.local"
	adminPassword = "Admin123!"
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

type testServer struct {
	*httptest.Server

	clock  *testClock
	router *Router
	events []cartsdk.Event
}

// newTestServer runs the full router against an in-memory store whose
// tokens live one minute and can be refreshed for an hour.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	clock := &testClock{t: time.Now().UTC().Truncate(time.Second)}
	st := store.New(clock.Now)

	signer, err := jwtx.NewHS256([]byte(strings.Repeat("s", 32)), "eventcart-test", jwtx.WithClock(clock.Now))
	require.NoError(t, err)

	tokens := &service.TokenService{
		Signer:       signer,
		Store:        st,
		AccessTTL:    time.Minute,
		RefreshGrace: time.Hour,
		Now:          clock.Now,
	}
	auth := &service.AuthService{Store: st, Tokens: tokens}

	_, err = auth.EnsureAdmin(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	events := service.SeedCatalogue(ctx, st, 6, 7, clock.Now())

	router := NewRouter(st, "test", slogx.Discard())
	router.AuthService = auth
	router.TokenService = tokens
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, clock: clock, router: router, events: events}
}

func (ts *testServer) session() (*cartsdk.Session, *credstore.Memory) {
	store := credstore.NewMemory()
	return cartsdk.NewSDKClient(ts.URL, cartsdk.WithLogger(slogx.Discard())).NewSession(store), store
}

func (ts *testServer) customer(t *testing.T, email string) *cartsdk.Session {
	t.Helper()
	s, _ := ts.session()
	_, err := s.Register(context.Background(), cartsdk.RegisterRequest{
		Email:     email,
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Byron",
	})
	require.NoError(t, err)
	return s
}

func (ts *testServer) admin(t *testing.T) *cartsdk.Session {
	t.Helper()
	s, _ := ts.session()
	_, err := s.Login(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	return s
}

func (ts *testServer) requestCount(route string, code int) float64 {
	return testutil.ToFloat64(ts.router.metrics.requestsTotal.WithLabelValues(route, strconv.Itoa(code)))
}

var checkout = cartsdk.CheckoutRequest{
	ShippingAddress: cartsdk.Address{
		FullName:   "Ada Byron",
		Line1:      "1 Main St",
		City:       "Perth",
		PostalCode: "6000",
		Country:    "AU",
	},
	PaymentMethod: cartsdk.PaymentCard,
}

func TestShoppingFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.customer(t, "ada@example.com")

	list, err := s.ListEvents(ctx, cartsdk.ListEventsOptions{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 6, list.Total)
	require.Len(t, list.Events, 2)

	event, err := s.GetEvent(ctx, list.Events[0].ID)
	require.NoError(t, err)

	cart, err := s.AddToCart(ctx, cartsdk.AddCartItemRequest{EventID: event.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.True(t, event.Price.Mul(decimal.NewFromInt(2)).Equal(cart.Total), cart.Total.String())

	cart, err = s.UpdateCartItem(ctx, cart.Items[0].ID, 1)
	require.NoError(t, err)
	require.True(t, event.Price.Equal(cart.Total))

	wl, err := s.AddToWishlist(ctx, list.Events[1].ID)
	require.NoError(t, err)
	require.True(t, wl.Contains(list.Events[1].ID))

	order, err := s.Checkout(ctx, checkout)
	require.NoError(t, err)
	require.Equal(t, cartsdk.OrderPending, order.Status)
	require.True(t, event.Price.Equal(order.Total))

	cart, err = s.GetCart(ctx)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	after, err := s.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, event.Available-1, after.Available)

	require.NoError(t, s.RemoveFromWishlist(ctx, list.Events[1].ID))
	wl, err = s.GetWishlist(ctx)
	require.NoError(t, err)
	require.Empty(t, wl.Items)

	require.Equal(t, 1.0, testutil.ToFloat64(ts.router.metrics.ordersTotal))
}

func TestBusinessErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.customer(t, "ada@example.com")

	var httpErr *cartsdk.HTTPError

	_, err := s.Checkout(ctx, checkout)
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusConflict, httpErr.Status)
	require.Equal(t, "cart_empty", httpErr.Code)

	_, err = s.GetEvent(ctx, "missing")
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.Status)

	_, err = s.AddToCart(ctx, cartsdk.AddCartItemRequest{
		EventID:        ts.events[0].ID,
		Quantity:       1,
		Customizations: []cartsdk.Customization{{ItemID: "nope", Quantity: 1}},
	})
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "invalid_customization", httpErr.Code)

	other, _ := ts.session()
	_, err = other.Register(ctx, cartsdk.RegisterRequest{
		Email: "ADA@example.com", Password: "whatever1", FirstName: "A", LastName: "B",
	})
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusConflict, httpErr.Status)

	_, err = other.Login(ctx, "ada@example.com", "wrong password")
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "invalid_credentials", httpErr.Code)
}

func TestServerSideValidation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	post := func(path, body string) (int, httpx.ErrorResponse) {
		resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		var out httpx.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	code, body := post("/auth/register", `{"email":"nope","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "validation_failed", body.Error)
	require.Contains(t, body.Details, "email")
	require.Contains(t, body.Details, "password")
	require.Contains(t, body.Details, "first_name")

	code, body = post("/auth/login", `{"email":"a@b.com","password":"x","extra":1}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "invalid_request", body.Error)
}

func TestFeatureEndpointsRequireToken(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	for _, path := range []string{"/cart", "/orders", "/users/me/wishlist", "/admin/users"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token", path)
	}

	resp, err := http.Get(ts.URL + "/events")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "catalogue is public")
}

func TestExpiredTokenIsRefreshedTransparently(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.customer(t, "ada@example.com")
	old := s.Token()

	ts.clock.Advance(2 * time.Minute)

	cart, err := s.GetCart(ctx)
	require.NoError(t, err)
	require.NotNil(t, cart)

	require.NotEqual(t, old, s.Token())
	creds, err := s.Store().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, s.Token(), creds.Token)

	valid, err := s.Client().VerifyToken(ctx, old)
	require.NoError(t, err)
	require.False(t, valid, "old token is revoked by the refresh")

	require.Equal(t, 1.0, ts.requestCount("POST /auth/refresh-token", http.StatusOK))
}

func TestConcurrentExpiredRequestsRefreshOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.customer(t, "ada@example.com")

	ts.clock.Advance(2 * time.Minute)

	const n = 10
	var wg sync.WaitGroup
	var failures atomic.Int32
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.GetCart(ctx); !assert.NoError(t, err) {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, failures.Load())
	require.Equal(t, 1.0, ts.requestCount("POST /auth/refresh-token", http.StatusOK))
	require.Zero(t, ts.requestCount("POST /auth/refresh-token", http.StatusUnauthorized))
}

func TestRefreshBeyondGraceExpiresSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.customer(t, "ada@example.com")

	var expired atomic.Int32
	s.OnSessionExpired(func(context.Context, error) { expired.Add(1) })

	ts.clock.Advance(3 * time.Hour)

	_, err := s.GetCart(ctx)
	require.True(t, cartsdk.IsUnauthorized(err), "caller sees the original 401: %v", err)
	require.Equal(t, int32(1), expired.Load())
	require.Empty(t, s.Token())

	_, err = s.Store().Get(ctx)
	require.ErrorIs(t, err, credstore.ErrNotFound)
}

func TestLogoutRevokesToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServer(t)
	s := ts.customer(t, "ada@example.com")
	token := s.Token()

	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	valid, err := s.Client().VerifyToken(ctx, token)
	require.NoError(t, err)
	require.False(t, valid)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/cart", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminEndpoints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ts := newTestServer(t)
	customer := ts.customer(t, "ada@example.com")
	admin := ts.admin(t)

	_, err := customer.AddToCart(ctx, cartsdk.AddCartItemRequest{EventID: ts.events[0].ID, Quantity: 3})
	require.NoError(t, err)
	order, err := customer.Checkout(ctx, checkout)
	require.NoError(t, err)

	t.Run("customers are forbidden", func(t *testing.T) {
		_, err := customer.ListUsers(ctx)
		var httpErr *cartsdk.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusForbidden, httpErr.Status)
	})

	t.Run("list", func(t *testing.T) {
		users, err := admin.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)

		orders, err := admin.ListAllOrders(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)
	})

	t.Run("status transitions", func(t *testing.T) {
		updated, err := admin.UpdateOrderStatus(ctx, order.ID, cartsdk.OrderConfirmed)
		require.NoError(t, err)
		require.Equal(t, cartsdk.OrderConfirmed, updated.Status)

		_, err = admin.UpdateOrderStatus(ctx, order.ID, cartsdk.OrderDelivered)
		var httpErr *cartsdk.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusConflict, httpErr.Status)
		require.Equal(t, "invalid_transition", httpErr.Code)

		mine, err := customer.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		require.Equal(t, cartsdk.OrderConfirmed, mine.Status)
	})

	t.Run("analytics", func(t *testing.T) {
		a, err := admin.GetAnalytics(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, a.TotalUsers)
		require.Equal(t, 1, a.TotalOrders)
		require.True(t, order.Total.Equal(a.Revenue))
		require.Len(t, a.TopEvents, 1)
		require.Equal(t, 3, a.TopEvents[0].Sold)
	})
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/livez")
	require.NoError(t, err)
	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	_ = resp.Body.Close()
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "test", health.Version)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.True(t, bytes.Contains(body, []byte(`eventcart_devserver_http_requests_total{code="200",route="GET /livez"} 1`)), string(body))

	resp, err = http.Get(ts.URL + "/swagger/doc.json")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
