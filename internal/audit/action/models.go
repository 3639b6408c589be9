// Package action records who did what to which clinical record. Entries are
// append-only and written after the action they describe has committed.
package action

import (
	"time"

	"github.com/google/uuid"

	id "intake/pkg/domain"
)

// Action is the closed set of audited operations.
type Action string

const (
	ListCases     Action = "LIST_CASES"
	ViewCase      Action = "VIEW_CASE"
	CreateCase    Action = "CREATE_CASE"
	UpdateCase    Action = "UPDATE_CASE"
	UpdatePatient Action = "UPDATE_PATIENT"
	DeleteCase    Action = "DELETE_CASE"
	ReviewCase    Action = "REVIEW_CASE"
	ViewPatient   Action = "VIEW_PATIENT"
)

func (a Action) IsValid() bool {
	switch a {
	case ListCases, ViewCase, CreateCase, UpdateCase, UpdatePatient, DeleteCase, ReviewCase, ViewPatient:
		return true
	}
	return false
}

type ResourceType string

const (
	ResourceTriageCase ResourceType = "TRIAGE_CASE"
	ResourcePatient    ResourceType = "PATIENT"
)

type Status string

const StatusSuccess Status = "SUCCESS"

// Event is what callers report. Empty actor, role and IP are filled from the
// request context; an empty status means success.
type Event struct {
	Action         Action
	Status         Status
	ActorID        id.UserID
	ActorRole      string
	ResourceType   ResourceType
	ResourceID     uuid.UUID
	FieldsModified []string
	Details        map[string]any
	IP             string
}

// Entry is a persisted event.
type Entry struct {
	ID             id.AuditID
	Action         Action
	Status         Status
	ActorID        id.UserID
	ActorRole      string
	ResourceType   ResourceType
	ResourceID     uuid.UUID
	FieldsModified []string
	Details        map[string]any
	IP             string
	Timestamp      time.Time
}
