package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"EVENTCART_ISSUER", "EVENTCART_JWT_SECRET", "EVENTCART_ACCESS_TTL", "EVENTCART_REFRESH_GRACE",
		"EVENTCART_SEED_EVENTS", "EVENTCART_SEED", "PORT", "HOUSEKEEPING_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "eventcart-dev", cfg.Issuer)
	require.Empty(t, cfg.JWTSecret)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshGrace)
	require.Equal(t, 24, cfg.SeedEvents)
	require.Equal(t, uint64(42), cfg.SeedValue)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Minute, cfg.HousekeepingInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("EVENTCART_ACCESS_TTL", "30s")
	t.Setenv("EVENTCART_REFRESH_GRACE", "120")
	t.Setenv("EVENTCART_SEED_EVENTS", "3")
	t.Setenv("PORT", "-1")

	cfg := LoadConfig()
	require.Equal(t, 30*time.Second, cfg.AccessTTL)
	require.Equal(t, 2*time.Minute, cfg.RefreshGrace)
	require.Equal(t, 3, cfg.SeedEvents)
	require.Equal(t, 8080, cfg.Port, "negative values fall back to the default")
}

func TestNewServesSeededCatalogue(t *testing.T) {
	application, err := New(Config{
		Issuer:        "eventcart-test",
		AccessTTL:     time.Minute,
		RefreshGrace:  time.Hour,
		AdminEmail:    "admin@eventcart.test",
		AdminPassword: "Admin123!",
		SeedEvents:    2,
		SeedValue:     1,
		Env:           "test",
		LogLevel:      "error",
		LogFormat:     "text",
		Port:          0,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/livez")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `"total":2`)
}

func TestNewRejectsShortSecret(t *testing.T) {
	_, err := New(Config{JWTSecret: "too-short", LogLevel: "error"})
	require.ErrorContains(t, err, "at least 32 bytes")
}
