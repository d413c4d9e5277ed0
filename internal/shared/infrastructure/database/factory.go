package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds database configuration.
type Config struct {
	// Driver selects the backend. Empty or DriverAuto detects it from URL.
	Driver Driver

	// URL is the PostgreSQL connection string, or a SQLite path/URL.
	URL string

	// SQLitePath is the SQLite database file. Defaults to ~/.deckctl/data.db.
	SQLitePath string

	// MaxConns is the maximum number of connections (PostgreSQL only).
	MaxConns int
}

// ResolvedDriver returns the concrete driver for this configuration.
func (c Config) ResolvedDriver() Driver {
	if c.Driver == "" || c.Driver == DriverAuto {
		return DetectDriver(c.URL)
	}
	return c.Driver
}

// NewConnection creates a database connection based on configuration.
// The backend package must have been imported for its driver to be registered.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.ResolvedDriver()

	var factory ConnectionFactory
	switch driver {
	case DriverPostgres:
		factory = newPostgresConnection
	case DriverSQLite:
		factory = newSQLiteConnection
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if factory == nil {
		return nil, fmt.Errorf("database driver %s not registered", driver)
	}
	return factory(ctx, cfg)
}

// DefaultSQLitePath returns the default SQLite database path.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".deckctl", "data.db")
}

// EnsureDirectory creates the parent directory for a file path if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// ConnectionFactory opens a connection for one backend.
type ConnectionFactory func(ctx context.Context, cfg Config) (Connection, error)

// Set by the postgres and sqlite packages from their init functions.
var (
	newPostgresConnection ConnectionFactory
	newSQLiteConnection   ConnectionFactory
)

// RegisterPostgresDriver registers the PostgreSQL connection factory.
func RegisterPostgresDriver(fn ConnectionFactory) {
	newPostgresConnection = fn
}

// RegisterSQLiteDriver registers the SQLite connection factory.
func RegisterSQLiteDriver(fn ConnectionFactory) {
	newSQLiteConnection = fn
}
