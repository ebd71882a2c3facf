package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenService tracks per-user token revocation. Suspending a user
// records a revocation instant; tokens issued before it are rejected by
// the auth middleware, so suspension takes effect on live sessions and
// not just at the next login.
type TokenService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenService(rdb *redis.Client, tokenLifetime time.Duration) *TokenService {
	return &TokenService{rdb: rdb, ttl: tokenLifetime}
}

func revocationKey(userID uint) string {
	return fmt.Sprintf("auth:revoked:%d", userID)
}

// RevokeUser invalidates every token the user currently holds. The entry
// only needs to outlive the longest-lived token, so it expires after the
// token lifetime.
func (s *TokenService) RevokeUser(ctx context.Context, userID uint) error {
	return s.rdb.Set(ctx, revocationKey(userID), time.Now().Unix(), s.ttl).Err()
}

// RevokedAt returns the revocation instant for the user, if any.
func (s *TokenService) RevokedAt(ctx context.Context, userID uint) (time.Time, bool, error) {
	val, err := s.rdb.Get(ctx, revocationKey(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0), true, nil
}
