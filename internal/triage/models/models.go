package models

import (
	"strings"
	"time"

	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
)

// Urgency is the triage priority assigned by the model or a clinician.
type Urgency string

const (
	UrgencyRoutine    Urgency = "routine"
	UrgencySemiUrgent Urgency = "semi-urgent"
	UrgencyUrgent     Urgency = "urgent"
)

func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case UrgencyRoutine, UrgencySemiUrgent, UrgencyUrgent:
		return u, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "urgency must be routine, semi-urgent or urgent")
	}
}

// CaseStatus tracks whether a clinician has signed off on a case.
type CaseStatus string

const (
	StatusUnreviewed CaseStatus = "unreviewed"
	StatusReviewed   CaseStatus = "reviewed"
)

func ParseCaseStatus(s string) (CaseStatus, error) {
	switch st := CaseStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusUnreviewed, StatusReviewed:
		return st, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "status must be unreviewed or reviewed")
	}
}

// Patient holds intake demographics.
type Patient struct {
	ID                 id.PatientID
	FirstName          string
	LastName           string
	DOB                *Date
	ContactInfo        *string
	InsuranceInfo      *string
	ReturningPatient   bool
	LanguagePreference *string
	Verified           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TriageCase is one intake conversation and its clinical review state.
type TriageCase struct {
	ID              id.CaseID
	PatientID       id.PatientID
	Transcript      *string
	AIUrgency       *Urgency
	OverrideUrgency *Urgency
	AISummary       *string
	OverrideSummary *string
	ClinicianNotes  *string
	Status          CaseStatus
	DateCreated     time.Time
	ReviewReason    *string
	ReviewedBy      *id.UserID
	ReviewTimestamp *time.Time
	ScheduledDate   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c *TriageCase) IsReviewed() bool {
	return c.Status == StatusReviewed
}
