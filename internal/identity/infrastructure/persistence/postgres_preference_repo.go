package persistence

import (
	"context"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
)

// PostgresPreferenceRepository handles persistence for user preferences using PostgreSQL.
type PostgresPreferenceRepository struct {
	exec database.Executor
}

// NewPostgresPreferenceRepository creates a new PostgresPreferenceRepository.
func NewPostgresPreferenceRepository(exec database.Executor) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{exec: exec}
}

// GetUserValue returns the stored value, or "" if not set.
func (r *PostgresPreferenceRepository) GetUserValue(ctx context.Context, uid domain.UID, appID, key string) (string, error) {
	query := `
		SELECT config_value
		FROM user_preferences
		WHERE user_id = $1 AND app_id = $2 AND config_key = $3
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
func (r *PostgresPreferenceRepository) SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error {
	query := `
		INSERT INTO user_preferences (user_id, app_id, config_key, config_value, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, app_id, config_key) DO UPDATE SET
			config_value = EXCLUDED.config_value,
			updated_at = NOW()
	`
	_, err := r.exec.Exec(ctx, query, uid.String(), appID, key, value)
	return err
}

// DeleteUserValue removes the preference.
func (r *PostgresPreferenceRepository) DeleteUserValue(ctx context.Context, uid domain.UID, appID, key string) error {
	query := `DELETE FROM user_preferences WHERE user_id = $1 AND app_id = $2 AND config_key = $3`
	_, err := r.exec.Exec(ctx, query, uid.String(), appID, key)
	return err
}
