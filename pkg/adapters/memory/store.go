package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

// Store implements ports.ProfileStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string]any
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Save persists a deep copy of the profile in memory.
func (s *Store) Save(ctx context.Context, profileID string, raw map[string]any) error {
	if profileID == "" {
		return domain.ErrEmptyProfileID
	}
	copied := domain.CloneRaw(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[profileID] = copied
	return nil
}

// Load retrieves a copy of the profile so callers cannot mutate the store.
func (s *Store) Load(ctx context.Context, profileID string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.data[profileID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return domain.CloneRaw(raw), nil
}

// Delete removes the profile.
func (s *Store) Delete(ctx context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, profileID)
	return nil
}

// List returns stored profile IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
