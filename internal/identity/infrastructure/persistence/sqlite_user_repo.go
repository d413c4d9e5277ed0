package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/database"
)

// SQLiteUserRepository is the user directory backed by SQLite.
type SQLiteUserRepository struct {
	exec database.Executor
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository.
func NewSQLiteUserRepository(exec database.Executor) *SQLiteUserRepository {
	return &SQLiteUserRepository{exec: exec}
}

// Save inserts a user or updates its display name.
func (r *SQLiteUserRepository) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (uid, display_name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (uid) DO UPDATE SET
			display_name = excluded.display_name
	`
	_, err := r.exec.Exec(ctx, query,
		user.UID().String(),
		user.DisplayName(),
		user.CreatedAt().UTC().Format(time.RFC3339),
	)
	return err
}

// FindByUID retrieves a user by uid.
func (r *SQLiteUserRepository) FindByUID(ctx context.Context, uid domain.UID) (*domain.User, error) {
	query := `SELECT uid, display_name, created_at FROM users WHERE uid = ?`

	var rawUID, displayName, createdAt string
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
// SQLite's lower() only folds ASCII, so matching is done by User.Matches.
func (r *SQLiteUserRepository) Search(ctx context.Context, pattern string) ([]*domain.User, error) {
	query := `SELECT uid, display_name, created_at FROM users ORDER BY uid`

	rows, err := r.exec.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var rawUID, displayName, createdAt string
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
func (r *SQLiteUserRepository) Delete(ctx context.Context, uid domain.UID) error {
	_, err := r.exec.Exec(ctx, `DELETE FROM users WHERE uid = ?`, uid.String())
	return err
}

// createdAtLayouts are the timestamp forms found in the users table:
// RFC3339 as written by Save, and SQLite's datetime('now').
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// parseCreatedAt returns the zero time for an unreadable timestamp.
func parseCreatedAt(raw string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r *SQLiteUserRepository) toDomain(rawUID, displayName, rawCreatedAt string) *domain.User {
	return domain.RehydrateUser(domain.RehydrateUID(rawUID), displayName, parseCreatedAt(rawCreatedAt))
}
