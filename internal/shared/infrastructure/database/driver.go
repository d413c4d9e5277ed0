package database

import (
	"fmt"
	"strings"
)

// Driver represents a database backend type.
type Driver string

const (
	// DriverAuto detects the driver from the connection URL.
	DriverAuto Driver = "auto"
	// DriverPostgres represents PostgreSQL database.
	DriverPostgres Driver = "postgres"
	// DriverSQLite represents SQLite database.
	DriverSQLite Driver = "sqlite"
)

// String returns the string representation of the driver.
func (d Driver) String() string {
	return string(d)
}

// ParseDriver parses a configured driver name. Empty means DriverAuto.
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(name))); d {
	case "", DriverAuto:
		return DriverAuto, nil
	case DriverPostgres, DriverSQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", name)
	}
}

// DetectDriver parses a connection string and returns the driver type.
// Empty URLs select SQLite so the CLI works without any setup.
func DetectDriver(url string) Driver {
	if url == "" {
		return DriverSQLite
	}

	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}

	if strings.HasPrefix(url, "sqlite://") ||
		strings.HasPrefix(url, "file:") ||
		strings.HasSuffix(url, ".db") ||
		strings.HasSuffix(url, ".sqlite") ||
		strings.HasSuffix(url, ".sqlite3") {
		return DriverSQLite
	}

	return DriverPostgres
}

// IsValid returns true if the driver is a concrete backend.
func (d Driver) IsValid() bool {
	switch d {
	case DriverPostgres, DriverSQLite:
		return true
	default:
		return false
	}
}
