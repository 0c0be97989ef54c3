package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string        // Issuer claim for session tokens (default: storefront)
	BootstrapToken string        // Optional: token required to create the first admin
	NumKeys        int           // Number of signing keys to generate (default: 3, min: 1, max: 10)
	SessionTTL     time.Duration // Session token lifetime (default: 24h)
	DatabaseFile   string        // Path to SQLite database file (default: ./storefront.db)
	PepperFile     string        // Path to file containing pepper for password hashing (default: ./pepper)

	UploadDir      string // Directory uploaded images are written to (default: ./uploads)
	UploadMaxBytes int64  // Largest accepted upload (default: 10 MiB)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired challenge sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:               getEnvOrDefault("STOREFRONT_ISSUER", "storefront"),
		BootstrapToken:       os.Getenv("BOOTSTRAP_TOKEN"),
		NumKeys:              getEnvIntOrDefault("STOREFRONT_NUM_KEYS", 3),
		SessionTTL:           getEnvDurationOrDefault("STOREFRONT_SESSION_TTL", 24*time.Hour),
		DatabaseFile:         getEnvOrDefault("STOREFRONT_DATABASE_FILE", "storefront.db"),
		PepperFile:           getEnvOrDefault("STOREFRONT_PEPPER_FILE", "pepper"),
		UploadDir:            getEnvOrDefault("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:       int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", 10<<20)),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
