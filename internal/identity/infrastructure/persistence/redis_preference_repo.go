package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/redis/go-redis/v9"
)

// RedisPreferenceRepository stores user preferences in Redis.
// Each user owns one hash, deck:prefs:{uid}, with fields named {app}:{key}.
type RedisPreferenceRepository struct {
	client redis.Cmdable
}

// NewRedisPreferenceRepository creates a new RedisPreferenceRepository.
func NewRedisPreferenceRepository(client redis.Cmdable) *RedisPreferenceRepository {
	return &RedisPreferenceRepository{client: client}
}

func preferenceHashKey(uid domain.UID) string {
	return fmt.Sprintf("deck:prefs:%s", uid.String())
}

func preferenceField(appID, key string) string {
	return appID + ":" + key
}

// GetUserValue returns the stored value, or "" if not set.
func (r *RedisPreferenceRepository) GetUserValue(ctx context.Context, uid domain.UID, appID, key string) (string, error) {
	value, err := r.client.HGet(ctx, preferenceHashKey(uid), preferenceField(appID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetUserValue replaces the value.
func (r *RedisPreferenceRepository) SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error {
	return r.client.HSet(ctx, preferenceHashKey(uid), preferenceField(appID, key), value).Err()
}

// DeleteUserValue removes the preference.
func (r *RedisPreferenceRepository) DeleteUserValue(ctx context.Context, uid domain.UID, appID, key string) error {
	return r.client.HDel(ctx, preferenceHashKey(uid), preferenceField(appID, key)).Err()
}
