package tokenstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salonova/booking-api/internal/auth"
)

const revokedKeyPrefix = "revoked_token:"

// RedisTokenStore keeps revoked jtis in redis with a TTL matching the
// token's remaining lifetime, so entries expire on their own.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to track.
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Compile-time check
var _ auth.TokenStore = (*RedisTokenStore)(nil)
