package store

import (
	"context"
	"sort"
	"sync"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
)

// MemoryStore is an in-memory diagram store.
// Diagrams are deep-copied on the way in and out so callers can mutate
// their copies without racing against other readers.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string][]byte
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string][]byte)}
}

// Get retrieves a diagram by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*diagram.Diagram, error) {
	s.mu.RLock()
	data, ok := s.diagrams[name]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(name)
	}

	d, err := diagram.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding diagram %q", name)
	}
	return d, nil
}

// Put stores a diagram under its name.
func (s *MemoryStore) Put(ctx context.Context, d *diagram.Diagram) error {
	if d == nil || d.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "diagram must have a name")
	}

	data, err := diagram.Marshal(d)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding diagram %q", d.Name)
	}

	s.mu.Lock()
	s.diagrams[d.Name] = data
	s.mu.Unlock()
	return nil
}

// Delete removes a diagram by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.diagrams[name]; !ok {
		return notFound(name)
	}
	delete(s.diagrams, name)
	return nil
}

// List returns the names of all stored diagrams, sorted.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.diagrams))
	for name := range s.diagrams {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

// Close drops all diagrams.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	s.diagrams = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
