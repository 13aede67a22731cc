package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qrdocs/deposit-system/internal/core/ports"
)

const (
	failuresKey = "login:failures"
	lockedKey   = "login:locked_until"
	// failureTTL bounds how long a stale failure streak survives without a
	// lockout following it.
	failureTTL = time.Hour
)

// LockoutStore shares the login failure counter and lockout expiry across
// instances through Redis.
type LockoutStore struct {
	client *redis.Client
}

func NewLockoutStore(client *redis.Client) *LockoutStore {
	return &LockoutStore{client: client}
}

func (s *LockoutStore) Failures(ctx context.Context) (int, error) {
	n, err := s.client.Get(ctx, failuresKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lockout failures: %w", err)
	}
	return n, nil
}

func (s *LockoutStore) RecordFailure(ctx context.Context) (int, error) {
	n, err := s.client.Incr(ctx, failuresKey).Result()
	if err != nil {
		return 0, fmt.Errorf("lockout record failure: %w", err)
	}
	_ = s.client.Expire(ctx, failuresKey, failureTTL).Err()
	return int(n), nil
}

func (s *LockoutStore) LockedUntil(ctx context.Context) (time.Time, error) {
	unixNano, err := s.client.Get(ctx, lockedKey).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("lockout expiry: %w", err)
	}
	return time.Unix(0, unixNano).UTC(), nil
}

func (s *LockoutStore) Lock(ctx context.Context, until time.Time) error {
	ttl := time.Until(until)
	if ttl < 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, lockedKey, until.UnixNano(), ttl).Err(); err != nil {
		return fmt.Errorf("lockout set: %w", err)
	}
	return s.client.Del(ctx, failuresKey).Err()
}

func (s *LockoutStore) Reset(ctx context.Context) error {
	return s.client.Del(ctx, failuresKey, lockedKey).Err()
}

var _ ports.LockoutStore = (*LockoutStore)(nil)
