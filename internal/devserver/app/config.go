package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string        // Optional: issuer claim for tokens (default: eventcart-dev)
	JWTSecret string        // Optional: HS256 secret, at least 32 bytes (default: random per process)
	AccessTTL time.Duration // Optional: access token lifetime (default: 15m)

	// RefreshGrace is how long after expiry a token may still be exchanged at
	// /auth/refresh-token (default: 7 days).
	RefreshGrace time.Duration

	AdminEmail    string // Optional: seeded admin account (default: admin@eventcart.local)
	AdminPassword string // Optional: password of the seeded admin (default: Admin123!)

	SeedEvents int    // Number of catalogue events to generate (default: 24)
	SeedValue  uint64 // gofakeit seed, 0 for random (default: 42)

	Env                  string        // Environment (dev, test, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // How often revoked tokens are purged (default: 10m)
}

func LoadConfig() Config {
	return Config{
		Issuer:               getEnvOrDefault("EVENTCART_ISSUER", "eventcart-dev"),
		JWTSecret:            os.Getenv("EVENTCART_JWT_SECRET"),
		AccessTTL:            getEnvDurationOrDefault("EVENTCART_ACCESS_TTL", 15*time.Minute),
		RefreshGrace:         getEnvDurationOrDefault("EVENTCART_REFRESH_GRACE", 7*24*time.Hour),
		AdminEmail:           getEnvOrDefault("EVENTCART_ADMIN_EMAIL", "admin@eventcart.local"),
		AdminPassword:        getEnvOrDefault("EVENTCART_ADMIN_PASSWORD", "Admin123!"),
		SeedEvents:           getEnvIntOrDefault("EVENTCART_SEED_EVENTS", 24),
		SeedValue:            uint64(getEnvIntOrDefault("EVENTCART_SEED", 42)),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
