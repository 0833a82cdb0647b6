package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ProviderBaseURL      string        // Required: banking provider API base URL
	ProviderClientID     string        // Required: OAuth client id
	ProviderClientSecret string        // Required: OAuth client secret
	ProviderRedirectURI  string        // Required: OAuth redirect URI registered with the provider
	ProviderScope        string        // Optional: OAuth scope (default: read_financial_profile)
	ProviderTimeout      time.Duration // Optional: per-request upstream timeout (default: 10s)

	SessionSecret string        // Optional: HS256 secret for the session cookie (random per boot when unset)
	SessionTTL    time.Duration // Optional: session lifetime (default: 24h)
	StateTTL      time.Duration // Optional: CSRF state lifetime before eviction (default: 10m)

	StorageDriver string // Optional: storage driver (sqlite, memory) (default: sqlite)
	DatabaseFile  string // Optional: path to SQLite database file (default: ./dashboard.db)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 5000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 5m)
}

func LoadConfig() Config {
	return Config{
		ProviderBaseURL:      getEnvOrDefault("PROVIDER_BASE_URL", "https://api-sandbox.capitalone.com"),
		ProviderClientID:     os.Getenv("PROVIDER_CLIENT_ID"),
		ProviderClientSecret: os.Getenv("PROVIDER_CLIENT_SECRET"),
		ProviderRedirectURI:  os.Getenv("PROVIDER_REDIRECT_URI"),
		ProviderScope:        getEnvOrDefault("PROVIDER_SCOPE", "read_financial_profile"),
		ProviderTimeout:      getEnvDurationOrDefault("PROVIDER_TIMEOUT", 10*time.Second),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),
		StateTTL:      getEnvDurationOrDefault("STATE_TTL", 10*time.Minute),

		StorageDriver: getEnvOrDefault("STORAGE_DRIVER", "sqlite"),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "dashboard.db"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
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

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Duration string first ("1h", "30m", "90s"), integer minutes as fallback.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return defaultValue
}
