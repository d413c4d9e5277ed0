package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
)

// PostgresUserRepository is the user directory backed by PostgreSQL.
type PostgresUserRepository struct {
	exec database.Executor
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(exec database.Executor) *PostgresUserRepository {
	return &PostgresUserRepository{exec: exec}
}

// Save inserts a user or updates its display name.
func (r *PostgresUserRepository) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (uid, display_name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO UPDATE SET
			display_name = EXCLUDED.display_name
	`
	_, err := r.exec.Exec(ctx, query, user.UID().String(), user.DisplayName(), user.CreatedAt())
	return err
}

// FindByUID retrieves a user by uid.
func (r *PostgresUserRepository) FindByUID(ctx context.Context, uid domain.UID) (*domain.User, error) {
	query := `SELECT uid, display_name, created_at FROM users WHERE uid = $1`

	var (
		rawUID, displayName string
		createdAt           time.Time
	)
	err := r.exec.QueryRow(ctx, query, uid.String()).Scan(&rawUID, &displayName, &createdAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.toDomain(rawUID, displayName, createdAt), nil
}

// Search returns users whose uid or display name contains pattern.
// lower() depends on the database collation, so matching is done by User.Matches.
func (r *PostgresUserRepository) Search(ctx context.Context, pattern string) ([]*domain.User, error) {
	query := `SELECT uid, display_name, created_at FROM users ORDER BY uid`

	rows, err := r.exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var (
			rawUID, displayName string
			createdAt           time.Time
		)
		if err := rows.Scan(&rawUID, &displayName, &createdAt); err != nil {
			return nil, err
		}
		if user := r.toDomain(rawUID, displayName, createdAt); user.Matches(pattern) {
			users = append(users, user)
		}
	}
	return users, rows.Err()
}

// Delete removes a user from the directory.
func (r *PostgresUserRepository) Delete(ctx context.Context, uid domain.UID) error {
	_, err := r.exec.Exec(ctx, `DELETE FROM users WHERE uid = $1`, uid.String())
	return err
}

func (r *PostgresUserRepository) toDomain(rawUID, displayName string, createdAt time.Time) *domain.User {
	return domain.RehydrateUser(domain.RehydrateUID(rawUID), displayName, createdAt)
}
