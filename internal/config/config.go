// Package config loads client configuration from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// Backend
	ServerURL string
	Timeout   time.Duration

	// Token (overrides the saved token file when set)
	AuthToken string

	// Local cache
	CacheDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment with defaults. A .env
// file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerURL: envOr("COMPANYSPHERE_SERVER", "http://localhost:8080"),
		Timeout:   envDuration("COMPANYSPHERE_TIMEOUT", 30*time.Second),
		AuthToken: envOr("COMPANYSPHERE_TOKEN", ""),
		CacheDir:  envOr("COMPANYSPHERE_CACHE_DIR", defaultCacheDir()),
		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "console"),
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "companysphere", "documents")
	}
	return filepath.Join(os.TempDir(), "companysphere-cache")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
