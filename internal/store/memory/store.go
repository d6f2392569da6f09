package memory

import (
	"context"
	"sync"

	"github.com/zhulik/vote/internal/core"
)

// Store keeps counters in process memory. It is meant for local runs and tests,
// counters do not survive a restart.
type Store struct {
	mu       sync.RWMutex
	counters map[string]int64
}

func NewStore() *Store {
	return &Store{
		counters: make(map[string]int64),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Get(_ context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.counters[key]
	if !ok {
		return 0, core.ErrKeyNotFound
	}

	return value, nil
}

func (s *Store) Set(_ context.Context, key string, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[key] = value

	return nil
}

func (s *Store) Incr(_ context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[key] += delta

	return s.counters[key], nil
}

func (s *Store) HealthCheck() error {
	return nil
}

func (s *Store) Shutdown() error {
	return nil
}
