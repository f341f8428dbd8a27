package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	DatabasePath string
	Language     string
	LogLevel     string
	LogFormat    string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.DatabasePath = getEnv("FACTURIER_DB", defaultDatabasePath())
	cfg.Language = getEnv("FACTURIER_LANG", "en")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")
	return cfg
}

// defaultDatabasePath puts the database under the user config directory,
// falling back to the working directory when none is available.
func defaultDatabasePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "facturier", "facturier.db")
	}
	return "facturier.db"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
	return def
}
