// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service. It is built once
// at startup and passed by reference into every handler; nothing reads the
// environment after Load returns.
type Config struct {
	Port   string
	AppEnv string
	WebDir string

	// remove.bg API. An empty key is not a startup error — the processing
	// endpoint reports it per request instead.
	RemoveBGKey string
	RemoveBGURL string

	// Object storage (S3-compatible: MinIO locally, any S3 provider in
	// production). Empty credentials disable persistence; the processing
	// endpoint reports the missing configuration per request.
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageUseSSL     bool
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/cutouts"

	// Optional processed-image history. Empty DATABASE_URL disables it.
	DatabaseURL string

	MaxUploadBytes int64
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),
		WebDir: getEnv("WEB_DIR", "./web"),

		RemoveBGKey: getEnv("REMOVE_BG_API_KEY", ""),
		RemoveBGURL: getEnv("REMOVE_BG_API_URL", "https://api.remove.bg"),

		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", "cutouts"),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/cutouts"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_MB", 8) << 20,
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HistoryEnabled reports whether a history database was configured.
func (c *Config) HistoryEnabled() bool {
	return c.DatabaseURL != ""
}

// StorageConfigured reports whether object-store credentials are present.
func (c *Config) StorageConfigured() bool {
	return c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
