package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/migrations"
)

// setupSQLiteTestDB opens a temp SQLite database with all migrations applied.
func setupSQLiteTestDB(t *testing.T) database.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "deck.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn), "failed to apply SQLite schema")
	return conn
}

func mustUser(t *testing.T, uid, displayName string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(domain.MustUID(uid), displayName)
	require.NoError(t, err)
	return user
}
