package auth

import (
	"context"
	"time"
)

// TokenStore tracks revoked token ids. Logout revokes the jti for the
// token's remaining lifetime; the access guard checks it on every request.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
