// Package changelog records field-level changes to patients and triage
// cases. Entries are append-only and written in the same transaction as the
// change they describe.
package changelog

import (
	"time"

	"github.com/google/uuid"

	id "intake/pkg/domain"
)

// ParentKind names the type of entity an entry belongs to.
type ParentKind string

const (
	ParentPatient    ParentKind = "PATIENT"
	ParentTriageCase ParentKind = "TRIAGE_CASE"
)

func (k ParentKind) IsValid() bool {
	return k == ParentPatient || k == ParentTriageCase
}

// Parent identifies the audited entity.
type Parent struct {
	Kind ParentKind
	ID   uuid.UUID
}

func PatientParent(patientID id.PatientID) Parent {
	return Parent{Kind: ParentPatient, ID: uuid.UUID(patientID)}
}

func CaseParent(caseID id.CaseID) Parent {
	return Parent{Kind: ParentTriageCase, ID: uuid.UUID(caseID)}
}

// Entry is one changed field. A nil value means the field was absent.
type Entry struct {
	ID        id.ChangelogID
	Parent    Parent
	FieldName string
	OldValue  *string
	NewValue  *string
	ChangedBy id.UserID
	ChangedAt time.Time
}

// EntryView is an entry with the email of the principal who made it.
type EntryView struct {
	Entry
	ChangedByEmail string
}

// Snapshot holds the pre-change values of an entity keyed by field name.
type Snapshot map[string]any

// FieldValue is one proposed new value. Proposals are ordered so entries come
// out in the order the caller listed the fields.
type FieldValue struct {
	Name  string
	Value any
}
