package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Required: issuer claim for access tokens

	SigningKeyFile string        // Optional: path to PKCS8 Ed25519 PEM (default: ephemeral key per start)
	DatabaseFile   string        // Optional: path to SQLite database file (default: ./portal.db)
	AccessTTL      time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTTL     time.Duration // Optional: refresh token lifetime (default: 720h)

	StorageBackend string // Document storage backend: "fs" or "s3" (default: fs)
	StorageDir     string // fs backend: directory for uploaded files (default: ./uploads)
	StorageBaseURL string // fs backend: public URL prefix for uploaded files (default: /files)
	S3Endpoint     string // s3 backend: endpoint host, no scheme
	S3Region       string
	S3Bucket       string
	S3KeyID        string
	S3Secret       string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	SweepInterval       time.Duration // Expired session sweep interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("PORTAL_ISSUER", "sun-tower-portal"),
		SigningKeyFile: os.Getenv("PORTAL_SIGNING_KEY_FILE"),
		DatabaseFile:   getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		AccessTTL:      getEnvDurationOrDefault("PORTAL_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:     getEnvDurationOrDefault("PORTAL_REFRESH_TTL", 30*24*time.Hour),

		StorageBackend: getEnvOrDefault("PORTAL_STORAGE_BACKEND", "fs"),
		StorageDir:     getEnvOrDefault("PORTAL_STORAGE_DIR", "uploads"),
		StorageBaseURL: getEnvOrDefault("PORTAL_STORAGE_BASE_URL", "/files"),
		S3Endpoint:     os.Getenv("PORTAL_S3_ENDPOINT"),
		S3Region:       getEnvOrDefault("PORTAL_S3_REGION", "auto"),
		S3Bucket:       os.Getenv("PORTAL_S3_BUCKET"),
		S3KeyID:        os.Getenv("PORTAL_S3_KEY_ID"),
		S3Secret:       os.Getenv("PORTAL_S3_SECRET"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		SweepInterval:       getEnvDurationOrDefault("PORTAL_SWEEP_INTERVAL", 1*time.Hour),
	}

	return cfg
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

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
