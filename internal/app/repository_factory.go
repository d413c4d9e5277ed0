package app

import (
	"fmt"

	identityDomain "github.com/felixgeelhaar/deckctl/internal/identity/domain"
	identityPersistence "github.com/felixgeelhaar/deckctl/internal/identity/infrastructure/persistence"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// UserRepository creates the user directory for the configured driver.
func (f *RepositoryFactory) UserRepository() (identityDomain.UserRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return identityPersistence.NewPostgresUserRepository(f.conn), nil
	case database.DriverSQLite:
		return identityPersistence.NewSQLiteUserRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// PreferenceRepository creates a database-backed preference repository for the configured driver.
func (f *RepositoryFactory) PreferenceRepository() (identityDomain.PreferenceRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return identityPersistence.NewPostgresPreferenceRepository(f.conn), nil
	case database.DriverSQLite:
		return identityPersistence.NewSQLitePreferenceRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}
