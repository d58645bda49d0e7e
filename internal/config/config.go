// Package config loads settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	CityFiles      map[models.City]string
	DataDir        string
	DatabasePath   string
	LogPath        string
	LogLevel       string
	SampleRows     int
	RetentionDays  int
	CacheTTL       time.Duration
	NotifySlowLoad time.Duration
	WatchData      bool
}

// Default values
const (
	defaultDataDir        = "data"
	defaultLogLevel       = "info"
	defaultSampleRows     = 5
	defaultRetentionDays  = 90
	defaultCacheTTL       = 10 * time.Minute
	defaultNotifySlowLoad = 5 * time.Second
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
		DataDir:        getEnvString("DATA_DIR", defaultDataDir),
		CityFiles:      loadCityFiles(),
		DatabasePath:   getEnvString("DATABASE_PATH", getDefaultPath("runs.db")),
		LogPath:        getEnvString("LOG_PATH", getDefaultPath("bikeshare.log")),
		LogLevel:       getEnvString("LOG_LEVEL", defaultLogLevel),
		SampleRows:     getEnvInt("SAMPLE_ROWS", defaultSampleRows),
		RetentionDays:  getEnvInt("RUN_RETENTION_DAYS", defaultRetentionDays),
		CacheTTL:       getEnvDuration("CACHE_TTL", defaultCacheTTL),
		NotifySlowLoad: getEnvDuration("NOTIFY_SLOW_LOAD", defaultNotifySlowLoad),
		WatchData:      getEnvBool("WATCH_DATA", true),
	}

	if cfg.SampleRows < 0 {
		cfg.SampleRows = 0
	}

	info, err := os.Stat(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("DATA_DIR %q is not accessible: %w", cfg.DataDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("DATA_DIR %q is not a directory", cfg.DataDir)
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

	// Home directory location
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bikeshare-tui", ".env"))
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultPath returns name inside the application's config directory.
func getDefaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", "bikeshare-tui", name)
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

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool plus "yes"/"no".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
