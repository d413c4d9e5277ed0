package persistence

import (
	"context"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/felixgeelhaar/deckctl/internal/shared/infrastructure/resilience"
)

// GuardedPreferenceRepository fronts a remote preference store with a circuit breaker.
type GuardedPreferenceRepository struct {
	next    domain.PreferenceRepository
	breaker *resilience.Breaker
}

var _ domain.PreferenceRepository = (*GuardedPreferenceRepository)(nil)

// NewGuardedPreferenceRepository wraps next with breaker.
func NewGuardedPreferenceRepository(next domain.PreferenceRepository, breaker *resilience.Breaker) *GuardedPreferenceRepository {
	return &GuardedPreferenceRepository{next: next, breaker: breaker}
}

func (r *GuardedPreferenceRepository) GetUserValue(ctx context.Context, uid domain.UID, appID, key string) (string, error) {
	var value string
	err := r.breaker.Do(func() error {
		var err error
		value, err = r.next.GetUserValue(ctx, uid, appID, key)
		return err
	})
	return value, err
}

func (r *GuardedPreferenceRepository) SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error {
	return r.breaker.Do(func() error {
		return r.next.SetUserValue(ctx, uid, appID, key, value)
	})
}

func (r *GuardedPreferenceRepository) DeleteUserValue(ctx context.Context, uid domain.UID, appID, key string) error {
	return r.breaker.Do(func() error {
		return r.next.DeleteUserValue(ctx, uid, appID, key)
	})
}
