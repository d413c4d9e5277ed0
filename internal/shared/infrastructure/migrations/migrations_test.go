package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database/sqlite"
)

func TestUpFiles(t *testing.T) {
	for _, driver := range []database.Driver{database.DriverSQLite, database.DriverPostgres} {
		files, err := upFiles(driver)
		require.NoError(t, err)
		assert.Equal(t, []string{
			driver.String() + "/000001_users.up.sql",
			driver.String() + "/000002_user_preferences.up.sql",
		}, files)
	}

	_, err := upFiles(database.DriverAuto)
	assert.Error(t, err)
}

func TestRun_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "deck.db")})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Run(ctx, conn))
	// Running again must be harmless
	require.NoError(t, Run(ctx, conn))

	for _, table := range []string{"users", "user_preferences"} {
		var name string
		err := conn.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}
