package memory

import (
	"context"
	"sync"
	"time"

	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// LockoutStore keeps the failed-attempt counter and lockout expiry in
// process memory. One instance guards the whole login door.
type LockoutStore struct {
	mu       sync.Mutex
	failures int
	until    time.Time
}

func NewLockoutStore() *LockoutStore {
	return &LockoutStore{}
}

func (s *LockoutStore) Failures(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures, nil
}

func (s *LockoutStore) RecordFailure(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
	return s.failures, nil
}

func (s *LockoutStore) LockedUntil(_ context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.until, nil
}

func (s *LockoutStore) Lock(_ context.Context, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.until = until
	s.failures = 0
	return nil
}

func (s *LockoutStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = 0
	s.until = time.Time{}
	return nil
}

var _ ports.LockoutStore = (*LockoutStore)(nil)
