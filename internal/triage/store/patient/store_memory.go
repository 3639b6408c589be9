package patient

import (
	"context"
	"fmt"
	"sync"

	"intake/internal/triage/models"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

// Error Contract:
//   - Return sentinel.ErrNotFound when the patient does not exist
//   - Return sentinel.ErrConflict when creating a patient whose ID is taken
//
// InMemoryStore stores patients in memory for tests/dev.
type InMemoryStore struct {
	mu       sync.RWMutex
	patients map[id.PatientID]models.Patient
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{patients: make(map[id.PatientID]models.Patient)}
}

func (s *InMemoryStore) Create(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[p.ID]; ok {
		return fmt.Errorf("patient %s: %w", p.ID, sentinel.ErrConflict)
	}
	s.patients[p.ID] = *p
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, patientID id.PatientID) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[patientID]
	if !ok {
		return nil, fmt.Errorf("patient not found: %w", sentinel.ErrNotFound)
	}
	return &p, nil
}

func (s *InMemoryStore) Update(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[p.ID]; !ok {
		return fmt.Errorf("patient not found: %w", sentinel.ErrNotFound)
	}
	s.patients[p.ID] = *p
	return nil
}
