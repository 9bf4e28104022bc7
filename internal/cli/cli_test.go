package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	devserver "github.com/aussiebroadwan/eventcart/internal/devserver/app"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/credstore"
	"github.com/aussiebroadwan/eventcart/pkg/credstore/file"
)

const (
	adminEmail    = "admin@eventcart.test"
	adminPassword = "Admin123!"
)

type harness struct {
	t      *testing.T
	srv    *httptest.Server
	store  credstore.Store
	cfg    Config
	events []cartsdk.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	application, err := devserver.New(devserver.Config{
		Issuer:               "eventcart-test",
		JWTSecret:            strings.Repeat("k", 32),
		AccessTTL:            time.Minute,
		RefreshGrace:         time.Hour,
		AdminEmail:           adminEmail,
		AdminPassword:        adminPassword,
		SeedEvents:           4,
		SeedValue:            3,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Minute,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	// Every invocation reopens the same file, like separate processes would.
	st, err := file.New(filepath.Join(t.TempDir(), "credentials"), nil)
	require.NoError(t, err)

	list, err := cartsdk.NewSDKClient(srv.URL).NewSession(credstore.NewMemory()).
		ListEvents(context.Background(), cartsdk.ListEventsOptions{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, list.Events)

	return &harness{
		t:     t,
		srv:   srv,
		store: st,
		cfg: Config{
			BaseURL:   srv.URL,
			Store:     StoreFile,
			Timeout:   5 * time.Second,
			LogLevel:  "error",
			LogFormat: "text",
		},
		events: list.Events,
	}
}

// run executes one CLI invocation and returns stdout and stderr.
func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	app := New(h.cfg, h.store, strings.NewReader(stdin), &out, &errOut)
	err := app.Run(context.Background(), args)
	return out.String(), errOut.String(), err
}

func (h *harness) mustRun(stdin string, args ...string) string {
	h.t.Helper()
	out, errOut, err := h.run(stdin, args...)
	require.NoError(h.t, err, "stderr: %s", errOut)
	return out
}

// available returns an event with at least n tickets left.
func (h *harness) available(n int) cartsdk.Event {
	h.t.Helper()
	for _, e := range h.events {
		if e.Available >= n {
			return e
		}
	}
	h.t.Fatalf("no event with %d tickets left", n)
	return cartsdk.Event{}
}

func TestCustomerFlow(t *testing.T) {
	h := newHarness(t)
	event := h.available(2)

	out := h.mustRun("Secret123!\n", "register", "-email", "casey@example.com", "-first", "Casey", "-last", "Cli")
	require.Contains(t, out, "Welcome, Casey Cli!")

	out = h.mustRun("", "whoami")
	require.Contains(t, out, "Casey Cli <casey@example.com> (customer)")

	out = h.mustRun("", "status")
	require.Contains(t, out, "yes")
	require.Contains(t, out, "casey@example.com")
	require.Contains(t, out, "Expires:")

	out = h.mustRun("", "events")
	require.Contains(t, out, event.Title)
	require.Contains(t, out, "Showing")

	out = h.mustRun("", "event", event.ID)
	require.Contains(t, out, "Entry ticket")

	out = h.mustRun("", "cart", "add", event.ID, "-qty", "2")
	require.Contains(t, out, event.Title)
	require.Contains(t, out, "TOTAL")

	out = h.mustRun("", "checkout",
		"-name", "Casey Cli", "-line1", "1 Test St", "-city", "Sydney",
		"-postal", "2000", "-country", "au")
	require.Contains(t, out, "placed")
	require.Contains(t, out, "AU")

	out = h.mustRun("", "cart")
	require.Contains(t, out, "Your cart is empty.")

	out = h.mustRun("", "orders")
	require.Contains(t, out, string(cartsdk.OrderPending))

	out = h.mustRun("", "wishlist", "add", event.ID)
	require.Contains(t, out, event.Title)
	out = h.mustRun("", "wishlist", "remove", event.ID)
	require.Contains(t, out, "Removed")

	_, _, err := h.run("", "admin", "users")
	var httpErr *cartsdk.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusForbidden, httpErr.Status)

	out = h.mustRun("", "logout")
	require.Contains(t, out, "Signed out.")

	out = h.mustRun("", "whoami")
	require.Contains(t, out, "Not signed in.")

	_, _, err = h.run("", "cart")
	require.ErrorContains(t, err, "not signed in")
}

func TestCartCustomization(t *testing.T) {
	h := newHarness(t)
	event := h.available(1)

	var optional *cartsdk.PackageItem
	for i := range event.Items {
		if event.Items[i].Optional {
			optional = &event.Items[i]
			break
		}
	}
	if optional == nil {
		t.Skip("seeded event has no optional items")
	}

	h.mustRun("Secret123!\n", "register", "-email", "custom@example.com", "-first", "Cus", "-last", "Tom")

	out := h.mustRun("", "cart", "add", event.ID, "-item", optional.ID+"="+strconv.Itoa(optional.Quantity+1))
	require.Contains(t, out, event.Title)

	_, _, err := h.run("", "cart", "add", event.ID, "-item", "broken")
	require.ErrorIs(t, err, ErrUsage)
}

func TestAdminCommands(t *testing.T) {
	h := newHarness(t)
	event := h.available(1)

	h.mustRun("Secret123!\n", "register", "-email", "buyer@example.com", "-first", "Bo", "-last", "Buyer")
	h.mustRun("", "cart", "add", event.ID)
	out := h.mustRun("", "checkout",
		"-name", "Bo Buyer", "-line1", "2 Test St", "-city", "Perth",
		"-postal", "6000", "-country", "AU", "-payment", cartsdk.PaymentInvoice)
	orderID := strings.Fields(out)[1]

	out = h.mustRun(adminPassword+"\n", "login", "-email", adminEmail)
	require.Contains(t, out, "Signed in as EventCart Admin")

	out = h.mustRun("", "whoami")
	require.Contains(t, out, "(admin)")

	out = h.mustRun("", "admin", "users")
	require.Contains(t, out, "buyer@example.com")

	out = h.mustRun("", "admin", "orders")
	require.Contains(t, out, orderID)

	out = h.mustRun("", "admin", "status", orderID, "CONFIRMED")
	require.Contains(t, out, "is now confirmed")

	out = h.mustRun("", "admin", "analytics")
	require.Contains(t, out, "Revenue:")
	require.Contains(t, out, event.Title)

	_, _, err := h.run("", "admin", "status", orderID, "lost")
	require.ErrorIs(t, err, ErrUsage)
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("wrong-password\n", "login", "-email", adminEmail)
	require.ErrorContains(t, err, "invalid email or password")

	_, _, err = h.run("", "login")
	require.ErrorIs(t, err, ErrUsage)

	_, _, err = h.run("", "login", "-email", adminEmail)
	require.ErrorIs(t, err, ErrUsage, "empty password")
}

func TestExpiredSessionIsReported(t *testing.T) {
	h := newHarness(t)

	// A token the server never issued cannot be refreshed.
	user := []byte(`{"id":"u1","email":"ghost@example.com","first_name":"Ghost"}`)
	require.NoError(t, h.store.Set(context.Background(), user, "not-a-real-token"))

	_, errOut, err := h.run("", "cart")
	require.Error(t, err)
	require.Contains(t, errOut, "Your session has expired")

	_, err = h.store.Get(context.Background())
	require.ErrorIs(t, err, credstore.ErrNotFound)
}

func TestUsage(t *testing.T) {
	h := newHarness(t)

	_, errOut, err := h.run("")
	require.ErrorIs(t, err, ErrUsage)
	require.Contains(t, errOut, "Usage: eventcart <command>")

	_, _, err = h.run("", "help")
	require.NoError(t, err)

	_, _, err = h.run("", "fly")
	require.ErrorIs(t, err, ErrUsage)

	_, _, err = h.run("", "events", "-bogus")
	require.ErrorIs(t, err, ErrUsage)

	out := h.mustRun("", "version")
	require.Contains(t, out, Version)

	out = h.mustRun("", "status")
	require.Contains(t, out, "no")
}
