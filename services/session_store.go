package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore remembers revoked token ids until the tokens would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedPrefix = "hotel:revoked:"

type RedisSessionStore struct {
	RDB *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{RDB: rdb}
}

func (s *RedisSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.RDB.Set(ctx, revokedPrefix+tokenID, "1", ttl).Err()
}

func (s *RedisSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.RDB.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NoopSessionStore is used when no redis is configured: logout is client side only.
type NoopSessionStore struct{}

func (NoopSessionStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopSessionStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
