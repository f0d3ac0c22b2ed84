package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Configuration
//
// Loads settings from environment variables, with an optional .env file in
// the working directory (the upstream journal service is dotenv-configured,
// so a shared .env works for both sides during development).
// ============================================================================

// Config holds all runtime configuration for the companion app.
// All values are loaded from environment variables to keep
// deployment configuration external to the binary.
type Config struct {
	BaseURL     string        // Base URL of the journal service (MOODLOG_BASE_URL)
	ListenAddr  string        // Listen address for the local web UI (MOODLOG_LISTEN_ADDR)
	DBPath      string        // Path to the local DuckDB cache file (MOODLOG_DB_PATH)
	HTTPTimeout time.Duration // Timeout for requests to the journal service (MOODLOG_HTTP_TIMEOUT)
	LogLevel    string        // Log level: debug, info, warn, error (MOODLOG_LOG_LEVEL)
}

// defaultHTTPTimeout matches the transport default used for all upstream
// requests when MOODLOG_HTTP_TIMEOUT is not set.
const defaultHTTPTimeout = 30 * time.Second

const (
	defaultListenAddr = ":8010"
	defaultDBPath     = "./data/moodlog.db"
	defaultLogLevel   = "info"
)

// Load reads configuration from a .env file (if present) and the
// environment. Environment variables win over .env values.
func Load() (*Config, error) {
	// Best-effort .env load — absence is fine, we fall back to the environment
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:  defaultListenAddr,
		DBPath:      defaultDBPath,
		HTTPTimeout: defaultHTTPTimeout,
		LogLevel:    defaultLogLevel,
	}

	cfg.BaseURL = strings.TrimRight(os.Getenv("MOODLOG_BASE_URL"), "/")

	if addr := os.Getenv("MOODLOG_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if path := os.Getenv("MOODLOG_DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	if level := os.Getenv("MOODLOG_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	// Parse timeout — allow overriding the default for slow networks or tests
	if timeoutStr := os.Getenv("MOODLOG_HTTP_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, serr.Wrap(err, "invalid MOODLOG_HTTP_TIMEOUT value, expected duration like '30s' or '2m'")
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}

// Validate checks that required fields are present and sane.
// Called at startup to fail fast on misconfiguration rather than
// discovering a missing base URL on the first form submission.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return serr.New("MOODLOG_BASE_URL is required (base URL of the journal service)")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return serr.New("MOODLOG_BASE_URL must start with http:// or https://")
	}
	if c.HTTPTimeout < time.Second {
		return serr.New("MOODLOG_HTTP_TIMEOUT must be at least 1s")
	}
	return nil
}
