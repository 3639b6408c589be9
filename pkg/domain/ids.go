// Package domain holds typed identifiers shared across the service. Each ID
// wraps a UUID so a patient ID can never be passed where a case ID is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "intake/pkg/domain-errors"
)

type (
	UserID      uuid.UUID
	PatientID   uuid.UUID
	CaseID      uuid.UUID
	ChangelogID uuid.UUID
	AuditID     uuid.UUID
)

// maxIDLength bounds input before handing it to the UUID parser.
const maxIDLength = 64

func parseUUID(kind, s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, kind+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid "+kind)
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user id", s)
	return UserID(u), err
}

func ParsePatientID(s string) (PatientID, error) {
	u, err := parseUUID("patient id", s)
	return PatientID(u), err
}

func ParseCaseID(s string) (CaseID, error) {
	u, err := parseUUID("case id", s)
	return CaseID(u), err
}

func NewUserID() UserID           { return UserID(uuid.New()) }
func NewPatientID() PatientID     { return PatientID(uuid.New()) }
func NewCaseID() CaseID           { return CaseID(uuid.New()) }
func NewChangelogID() ChangelogID { return ChangelogID(uuid.New()) }
func NewAuditID() AuditID         { return AuditID(uuid.New()) }

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id PatientID) String() string   { return uuid.UUID(id).String() }
func (id CaseID) String() string      { return uuid.UUID(id).String() }
func (id ChangelogID) String() string { return uuid.UUID(id).String() }
func (id AuditID) String() string     { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id PatientID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CaseID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialize as plain UUID strings in JSON.
func (id UserID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id PatientID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id CaseID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id ChangelogID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *UserID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PatientID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *CaseID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
