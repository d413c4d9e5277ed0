package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidUID         = errors.New("invalid user id")
	ErrUIDTooLong         = errors.New("user id exceeds maximum length")
	ErrDisplayNameTooLong = errors.New("display name exceeds maximum length")
)

// MaxUIDLength is the maximum allowed user id length.
const MaxUIDLength = 64

// MaxDisplayNameLength is the maximum allowed display name length.
const MaxDisplayNameLength = 255

// UID is the opaque identifier of a user account.
type UID struct {
	value string
}

// NewUID creates a validated user id.
// Surrounding whitespace is rejected rather than trimmed so that ids are stored verbatim.
func NewUID(value string) (UID, error) {
	if value == "" || strings.TrimSpace(value) != value {
		return UID{}, ErrInvalidUID
	}
	if len(value) > MaxUIDLength {
		return UID{}, ErrUIDTooLong
	}
	return UID{value: value}, nil
}

// MustUID is NewUID for literals known to be valid. It panics otherwise.
func MustUID(value string) UID {
	uid, err := NewUID(value)
	if err != nil {
		panic(err)
	}
	return uid
}

// RehydrateUID wraps a uid read back from the user directory.
// The directory owns its ids, so stored values are taken verbatim without validation.
func RehydrateUID(value string) UID {
	return UID{value: value}
}

// String returns the user id string.
func (u UID) String() string {
	return u.value
}

// IsZero reports whether the id is unset.
func (u UID) IsZero() bool {
	return u.value == ""
}

// Equals checks if two ids are equal.
func (u UID) Equals(other UID) bool {
	return u.value == other.value
}
