package ports

import (
	"context"

	"github.com/seplab/spmeplan/pkg/domain"
)

// CompoundStore defines the interface for persisting per-session compound
// sets. This lets a user resolve compounds once and compute several designs
// against the same set.
type CompoundStore interface {
	// Save persists the compound set for a given session ID.
	Save(ctx context.Context, sessionID string, compounds []domain.Compound) error

	// Load retrieves the compound set for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) ([]domain.Compound, error)

	// Delete removes the compound set for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all active sessions.
	List(ctx context.Context) ([]string, error)
}
