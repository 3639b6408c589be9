package triagecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"intake/internal/triage/models"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

// InMemoryStore stores cases in memory for tests/dev.
type InMemoryStore struct {
	mu    sync.RWMutex
	cases map[id.CaseID]models.TriageCase
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{cases: make(map[id.CaseID]models.TriageCase)}
}

func (s *InMemoryStore) Create(_ context.Context, c *models.TriageCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; ok {
		return fmt.Errorf("case %s: %w", c.ID, sentinel.ErrConflict)
	}
	s.cases[c.ID] = *c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, caseID id.CaseID) (*models.TriageCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, fmt.Errorf("case not found: %w", sentinel.ErrNotFound)
	}
	return &c, nil
}

func (s *InMemoryStore) matching(status *models.CaseStatus) []models.TriageCase {
	var out []models.TriageCase
	for _, c := range s.cases {
		if status == nil || c.Status == *status {
			out = append(out, c)
		}
	}
	return out
}

// List returns cases newest first.
func (s *InMemoryStore) List(_ context.Context, f Filter) ([]*models.TriageCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.matching(f.Status)
	sort.Slice(all, func(i, j int) bool {
		if all[i].DateCreated.Equal(all[j].DateCreated) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].DateCreated.After(all[j].DateCreated)
	})
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	out := make([]*models.TriageCase, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context, status *models.CaseStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matching(status)), nil
}

func (s *InMemoryStore) Update(_ context.Context, c *models.TriageCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; !ok {
		return fmt.Errorf("case not found: %w", sentinel.ErrNotFound)
	}
	s.cases[c.ID] = *c
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, caseID id.CaseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[caseID]; !ok {
		return fmt.Errorf("case not found: %w", sentinel.ErrNotFound)
	}
	delete(s.cases, caseID)
	return nil
}
