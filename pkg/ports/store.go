package ports

import (
	"context"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// StateStore defines the interface for persisting session state. Persistence
// is scoped to one planning session; stores may expire entries once the
// session ends.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.TripState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.TripState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}

// SessionLister is an optional extension for stores that can enumerate
// active sessions.
type SessionLister interface {
	List(ctx context.Context) ([]string, error)
}
