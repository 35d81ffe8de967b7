package memory

import (
	"context"
	"sync"

	"github.com/seplab/spmeplan/pkg/domain"
)

// Store implements ports.CompoundStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]domain.Compound
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]domain.Compound),
	}
}

// Save persists the compound set in memory.
func (s *Store) Save(ctx context.Context, sessionID string, compounds []domain.Compound) error {
	// Copy to ensure isolation, similar to serialization
	copied := make([]domain.Compound, len(compounds))
	copy(copied, compounds)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the compound set from memory.
func (s *Store) Load(ctx context.Context, sessionID string) ([]domain.Compound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	compounds, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// Copy on read so the caller can't mutate stored state through the slice.
	ret := make([]domain.Compound, len(compounds))
	copy(ret, compounds)
	return ret, nil
}

// Delete removes the compound set.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the IDs of all stored sessions.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
