package domain

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for the user directory.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByUID(ctx context.Context, uid UID) (*User, error)
	// Search returns users whose uid or display name contains pattern,
	// case-insensitively, ordered by uid. The empty pattern returns every user.
	Search(ctx context.Context, pattern string) ([]*User, error)
	Delete(ctx context.Context, uid UID) error
}

// PreferenceRepository defines the interface for per-user preference persistence.
// A preference is addressed by (uid, app, key) and holds a single string value.
type PreferenceRepository interface {
	// GetUserValue returns the stored value, or "" if not set.
	GetUserValue(ctx context.Context, uid UID, appID, key string) (string, error)
	// SetUserValue replaces the stored value.
	SetUserValue(ctx context.Context, uid UID, appID, key, value string) error
	// DeleteUserValue removes the preference. Deleting a missing preference is not an error.
	DeleteUserValue(ctx context.Context, uid UID, appID, key string) error
}
