package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// MemoryStore keeps streets in a map. Streets are cloned on the way in and
// out, so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	streets map[string]*street.Street
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streets: make(map[string]*street.Street)}
}

func (m *MemoryStore) Get(ctx context.Context, name string) (*street.Street, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.streets[name]
	if !ok {
		return nil, notFound(name)
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Put(ctx context.Context, name string, s *street.Street) error {
	if err := errors.ValidateStreetName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streets[name] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.streets[name]; !ok {
		return notFound(name)
	}
	delete(m.streets, name)
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.streets)), nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
