// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Log output formats.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds settings for a catalog run. The zero-override result
// documents the built-in PAD-US tables with default DuckDB settings.
type Config struct {
	BaseURL      string // overrides the catalog base URL when set
	ManifestPath string // optional YAML manifest with title, base URL and tables
	LogLevel     string // debug, info, warn, error (default "warn")
	LogFormat    string // auto, text, json (default "auto")

	// DuckDB session
	RateLimit         float64 // queries per second, 0 = unlimited
	MaxMemory         string  // e.g. "2GB"; empty keeps the DuckDB default
	Threads           int     // 0 keeps the DuckDB default
	InstallExtensions bool    // INSTALL/LOAD httpfs before querying (default true)

	// S3Region is used by object discovery when listing the base prefix.
	S3Region string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		BaseURL:           os.Getenv("LOOKUP_BASE_URL"),
		ManifestPath:      os.Getenv("LOOKUP_MANIFEST"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogFormat:         strings.ToLower(os.Getenv("LOG_FORMAT")),
		MaxMemory:         os.Getenv("DUCKDB_MAX_MEMORY"),
		InstallExtensions: parseBoolEnvDefault("DUCKDB_INSTALL_EXTENSIONS", true),
		S3Region:          os.Getenv("S3_REGION"),
	}

	if v := os.Getenv("QUERY_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid QUERY_RATE_LIMIT: %w", err)
		}
		if f < 0 {
			return nil, fmt.Errorf("invalid QUERY_RATE_LIMIT: must not be negative")
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("DUCKDB_THREADS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DUCKDB_THREADS: %w", err)
		}
		cfg.Threads = n
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatAuto
	}
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}

	if err := ValidateLogFormat(cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateLogFormat rejects anything but auto, text and json.
func ValidateLogFormat(format string) error {
	switch format {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported log format %q: use 'auto', 'text' or 'json'", format)
	}
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return defaultVal
	}
	if v == "0" || v == "false" || v == "no" || v == "off" {
		return false
	}
	if v == "1" || v == "true" || v == "yes" || v == "on" {
		return true
	}
	return defaultVal
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
