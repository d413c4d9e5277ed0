package domain

import (
	"strings"
	"time"
)

// User represents a registered user account of the hosting application.
type User struct {
	uid         UID
	displayName string
	createdAt   time.Time
}

// NewUser creates a new user. An empty display name defaults to the uid.
func NewUser(uid UID, displayName string) (*User, error) {
	if uid.IsZero() {
		return nil, ErrInvalidUID
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = uid.String()
	}
	if len(displayName) > MaxDisplayNameLength {
		return nil, ErrDisplayNameTooLong
	}

	return &User{
		uid:         uid,
		displayName: displayName,
		createdAt:   time.Now().UTC(),
	}, nil
}

// RehydrateUser recreates a user from persisted state.
func RehydrateUser(uid UID, displayName string, createdAt time.Time) *User {
	return &User{
		uid:         uid,
		displayName: displayName,
		createdAt:   createdAt,
	}
}

// Getters
func (u *User) UID() UID             { return u.uid }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Matches reports whether the user is selected by a directory search pattern.
// The empty pattern matches every user.
func (u *User) Matches(pattern string) bool {
	if pattern == "" {
		return true
	}
	pattern = strings.ToLower(pattern)
	return strings.Contains(strings.ToLower(u.uid.String()), pattern) ||
		strings.Contains(strings.ToLower(u.displayName), pattern)
}
