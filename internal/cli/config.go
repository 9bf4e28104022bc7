package cli

import (
	"os"
	"strconv"
	"time"
)

// Store drivers accepted by EVENTCART_STORE.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	BaseURL    string        // EventCart API base URL (default: http://localhost:8080)
	Store      string        // Credential store driver: file, sqlite or memory (default: file)
	StorePath  string        // Store location; file path or SQLite DSN (default: per-user config dir)
	Passphrase string        // Optional: seals the file store
	Timeout    time.Duration // HTTP client timeout (default: 10s)
	RateLimit  float64       // Client-side requests per second, 0 for none (default: 0)
	LogLevel   string        // Log level (debug, info, warn, error) (default: warn)
	LogFormat  string        // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	return Config{
		BaseURL:    getEnvOrDefault("EVENTCART_URL", "http://localhost:8080"),
		Store:      getEnvOrDefault("EVENTCART_STORE", StoreFile),
		StorePath:  os.Getenv("EVENTCART_STORE_PATH"),
		Passphrase: os.Getenv("EVENTCART_PASSPHRASE"),
		Timeout:    getEnvDurationOrDefault("EVENTCART_TIMEOUT", 10*time.Second),
		RateLimit:  getEnvFloatOrDefault("EVENTCART_RATE_LIMIT", 0),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
		return f
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
