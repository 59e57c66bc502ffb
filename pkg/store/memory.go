package store

import (
	"context"
	"slices"
	"sync"

	appio "github.com/archpadhq/archpad/pkg/io"
)

// MemoryStore keeps designs in process memory. Useful for tests and for
// serving without any configured persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]appio.Diagram
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{designs: make(map[string]appio.Diagram)}
}

// List returns the stored design names in lexical order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.designs))
	for name := range s.designs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Get returns the design with the given name, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, name string) (appio.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.designs[name]
	if !ok {
		return appio.Diagram{}, ErrNotFound
	}
	return d, nil
}

// Put stores a design, replacing any previous version.
func (s *MemoryStore) Put(ctx context.Context, name string, d appio.Diagram) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.designs[name] = d
	return nil
}

// Delete removes a design, or returns ErrNotFound.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.designs[name]; !ok {
		return ErrNotFound
	}
	delete(s.designs, name)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
