// Package memory provides an in-process core.KeyValueStore for tests and
// ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"github.com/rezkam/taskmind/internal/core"
)

// Store is a map-backed implementation of core.KeyValueStore.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
