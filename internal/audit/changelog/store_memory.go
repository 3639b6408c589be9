package changelog

import (
	"context"
	"fmt"
	"sync"

	"intake/pkg/platform/sentinel"
)

// InMemoryStore keeps entries in insertion order for tests and local runs.
// It does not take part in transactions.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

// ListByParent returns entries newest first. Entries written together keep
// their reverse insertion order.
func (s *InMemoryStore) ListByParent(_ context.Context, parent Parent) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Parent == parent {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

func (s *InMemoryStore) LatestForField(_ context.Context, parent Parent, field string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.Parent == parent && e.FieldName == field {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("changelog %s: %w", field, sentinel.ErrNotFound)
}
