package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenRevoker keeps a denylist of token ids. Entries only need to outlive
// the token they block.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NoopRevoker is the stateless default: logout changes nothing server side
// and a token stays valid until it expires.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type redisRevoker struct {
	redis *redis.Client
}

// NewRedisRevoker creates a Redis backed TokenRevoker.
func NewRedisRevoker(redisClient *redis.Client) TokenRevoker {
	return &redisRevoker{redis: redisClient}
}

func (r *redisRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id is empty")
	}
	// Already expired tokens are rejected by signature/expiry checks anyway.
	if ttl <= 0 {
		return nil
	}
	if err := r.redis.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	return nil
}

func (r *redisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redis.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token %s: %w", tokenID, err)
	}
	return n > 0, nil
}
