package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore tracks revoked token IDs so logout invalidates a JWT
// before its natural expiry.
type RevocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore creates a revocation store backed by Redis.
func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

func revocationKey(jti string) string {
	return "session:revoked:" + jti
}

// Revoke marks a token ID as revoked until the token would have expired.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether a token ID has been revoked. Lookup failures
// are treated as not revoked so an unreachable Redis does not lock everyone out.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) bool {
	n, err := s.rdb.Exists(ctx, revocationKey(jti)).Result()
	return err == nil && n > 0
}
