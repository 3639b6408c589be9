// Package triagecase persists triage cases.
//
// Error Contract:
//   - Return sentinel.ErrNotFound when the case does not exist
//   - Return sentinel.ErrConflict when creating a case whose ID is taken
package triagecase

import "intake/internal/triage/models"

// Filter narrows a listing. A nil Status lists every case.
type Filter struct {
	Status *models.CaseStatus
	Limit  int
}
