// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath    string
	TenantScope     string
	RefreshInterval time.Duration
	// DailyBudgetMicroUSD triggers a desktop notification when a day's
	// spend crosses it. Zero disables budget alerts.
	DailyBudgetMicroUSD int64
}

// Default values
const (
	defaultRefreshInterval = 30 * time.Second
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatabasePath:        getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		TenantScope:         getEnvString("TENANT_SCOPE", ""),
		RefreshInterval:     getEnvDuration("REFRESH_INTERVAL", defaultRefreshInterval),
		DailyBudgetMicroUSD: getEnvBudget("DAILY_BUDGET_USD"),
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "llmcost-tui", ".env"),
			filepath.Join(home, ".llmcost", ".env"),
		)
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "usage.db"
	}
	return filepath.Join(home, ".config", "llmcost-tui", "usage.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvBudget parses a USD amount (e.g. "12.50") into micro-USD.
// Unset, empty, or unparsable values disable the budget.
func getEnvBudget(key string) int64 {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	usd, err := strconv.ParseFloat(value, 64)
	if err != nil || usd <= 0 {
		return 0
	}
	return int64(usd * 1_000_000)
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
