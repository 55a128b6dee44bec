package middleware_test

import (
	"context"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It records what reaches it without copying.
type MockStore struct {
	data  map[string]map[string]any
	calls []string
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]map[string]any),
	}
}

func (s *MockStore) Save(ctx context.Context, profileID string, raw map[string]any) error {
	s.calls = append(s.calls, "save:"+profileID)
	s.data[profileID] = raw
	return nil
}

func (s *MockStore) Load(ctx context.Context, profileID string) (map[string]any, error) {
	s.calls = append(s.calls, "load:"+profileID)
	raw, ok := s.data[profileID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return domain.CloneRaw(raw), nil
}

func (s *MockStore) Delete(ctx context.Context, profileID string) error {
	s.calls = append(s.calls, "delete:"+profileID)
	delete(s.data, profileID)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.ProfileStore = (*MockStore)(nil)
