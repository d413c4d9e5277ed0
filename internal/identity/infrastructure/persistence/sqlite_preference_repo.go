package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
)

// SQLitePreferenceRepository handles persistence for user preferences using SQLite.
type SQLitePreferenceRepository struct {
	exec database.Executor
}

// NewSQLitePreferenceRepository creates a new SQLitePreferenceRepository.
func NewSQLitePreferenceRepository(exec database.Executor) *SQLitePreferenceRepository {
	return &SQLitePreferenceRepository{exec: exec}
}

// GetUserValue returns the stored value, or "" if not set.
func (r *SQLitePreferenceRepository) GetUserValue(ctx context.Context, uid domain.UID, appID, key string) (string, error) {
	query := `
		SELECT config_value
		FROM user_preferences
		WHERE user_id = ? AND app_id = ? AND config_key = ?
	`
	var value string
	err := r.exec.QueryRow(ctx, query, uid.String(), appID, key).Scan(&value)
	if err != nil {
		if database.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetUserValue upserts the value.
func (r *SQLitePreferenceRepository) SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error {
	query := `
		INSERT INTO user_preferences (user_id, app_id, config_key, config_value, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, app_id, config_key) DO UPDATE SET
			config_value = excluded.config_value,
			updated_at = excluded.updated_at
	`
	_, err := r.exec.Exec(ctx, query, uid.String(), appID, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeleteUserValue removes the preference.
func (r *SQLitePreferenceRepository) DeleteUserValue(ctx context.Context, uid domain.UID, appID, key string) error {
	query := `DELETE FROM user_preferences WHERE user_id = ? AND app_id = ? AND config_key = ?`
	_, err := r.exec.Exec(ctx, query, uid.String(), appID, key)
	return err
}
