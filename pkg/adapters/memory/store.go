// Package memory provides an in-process StateStore, the default backend for
// single-instance deployments and tests.
package memory

import (
	"context"
	"sync"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.TripState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.TripState),
	}
}

// Save persists the state in memory. The state is deep-copied so later
// caller mutations cannot leak into the store.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.TripState) error {
	copied := state.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the state from memory. The caller receives a copy, so it
// cannot mutate stored state through the returned pointer.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.TripState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state.Clone(), nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
