package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings backends.
const (
	SettingsBackendDatabase = "database"
	SettingsBackendRedis    = "redis"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// Database
	DatabaseURL      string
	DatabaseDriver   string
	SQLitePath       string
	DatabaseMaxConns int

	// Preferences
	SettingsBackend string

	// Redis
	RedisURL string
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "auto"),
		SQLitePath:       getEnv("SQLITE_PATH", ""),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 4),

		SettingsBackend: getEnv("SETTINGS_BACKEND", SettingsBackendDatabase),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	switch c.SettingsBackend {
	case SettingsBackendDatabase, SettingsBackendRedis:
	default:
		return fmt.Errorf("invalid SETTINGS_BACKEND %q: want %q or %q",
			c.SettingsBackend, SettingsBackendDatabase, SettingsBackendRedis)
	}

	switch c.DatabaseDriver {
	case "", "auto", "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.SettingsBackend == SettingsBackendRedis && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when SETTINGS_BACKEND=%s", SettingsBackendRedis)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
