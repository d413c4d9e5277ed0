package settings

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
)

// ErrInvalidPreferenceKey is returned when the app id or key is empty.
var ErrInvalidPreferenceKey = errors.New("app id and key are required")

// Service manages per-user preferences.
type Service struct {
	repo domain.PreferenceRepository
}

// NewService creates a settings service.
func NewService(repo domain.PreferenceRepository) *Service {
	return &Service{repo: repo}
}

// GetUserValue returns the preference value for a user, or "" if unset.
func (s *Service) GetUserValue(ctx context.Context, uid domain.UID, appID, key string) (string, error) {
	if appID == "" || key == "" {
		return "", ErrInvalidPreferenceKey
	}
	return s.repo.GetUserValue(ctx, uid, appID, key)
}

// SetUserValue replaces the preference value for a user.
func (s *Service) SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error {
	if appID == "" || key == "" {
		return ErrInvalidPreferenceKey
	}
	return s.repo.SetUserValue(ctx, uid, appID, key, value)
}

// DeleteUserValue removes the preference for a user.
func (s *Service) DeleteUserValue(ctx context.Context, uid domain.UID, appID, key string) error {
	if appID == "" || key == "" {
		return ErrInvalidPreferenceKey
	}
	return s.repo.DeleteUserValue(ctx, uid, appID, key)
}
