package handler

import (
	"time"

	"intake/internal/audit/changelog"
	"intake/internal/triage/models"
	"intake/internal/triage/service"
	id "intake/pkg/domain"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// CaseResponse is a case with its patient's demographics inlined.
type CaseResponse struct {
	CaseID          id.CaseID         `json:"caseID"`
	PatientID       id.PatientID      `json:"patientID"`
	Transcript      *string           `json:"transcript"`
	AIUrgency       *models.Urgency   `json:"AIUrgency"`
	OverrideUrgency *models.Urgency   `json:"overrideUrgency"`
	AISummary       *string           `json:"AISummary"`
	OverrideSummary *string           `json:"overrideSummary"`
	ClinicianNotes  *string           `json:"clinicianNotes"`
	Status          models.CaseStatus `json:"status"`
	DateCreated     time.Time         `json:"dateCreated"`
	ReviewReason    *string           `json:"reviewReason"`
	ReviewedBy      *id.UserID        `json:"reviewedBy"`
	ReviewTimestamp *time.Time        `json:"reviewTimestamp"`
	ScheduledDate   *time.Time        `json:"scheduledDate"`
	ReviewedByEmail *string           `json:"reviewedByEmail"`
	PreviousUrgency *string           `json:"previousUrgency"`

	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	DOB                *models.Date `json:"DOB"`
	ContactInfo        *string      `json:"contactInfo"`
	InsuranceInfo      *string      `json:"insuranceInfo"`
	ReturningPatient   bool         `json:"returningPatient"`
	LanguagePreference *string      `json:"languagePreference"`
	Verified           bool         `json:"verified"`
}

func newCaseResponse(v *service.CaseView) CaseResponse {
	c, p := v.Case, v.Patient
	return CaseResponse{
		CaseID:             c.ID,
		PatientID:          c.PatientID,
		Transcript:         c.Transcript,
		AIUrgency:          c.AIUrgency,
		OverrideUrgency:    c.OverrideUrgency,
		AISummary:          c.AISummary,
		OverrideSummary:    c.OverrideSummary,
		ClinicianNotes:     c.ClinicianNotes,
		Status:             c.Status,
		DateCreated:        c.DateCreated,
		ReviewReason:       c.ReviewReason,
		ReviewedBy:         c.ReviewedBy,
		ReviewTimestamp:    c.ReviewTimestamp,
		ScheduledDate:      c.ScheduledDate,
		ReviewedByEmail:    v.ReviewedByEmail,
		PreviousUrgency:    v.PreviousUrgency,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		DOB:                p.DOB,
		ContactInfo:        p.ContactInfo,
		InsuranceInfo:      p.InsuranceInfo,
		ReturningPatient:   p.ReturningPatient,
		LanguagePreference: p.LanguagePreference,
		Verified:           p.Verified,
	}
}

type CasesResponse struct {
	Cases []CaseResponse `json:"cases"`
	Count int            `json:"count"`
}

func newCasesResponse(list *service.CaseList) CasesResponse {
	cases := make([]CaseResponse, 0, len(list.Cases))
	for i := range list.Cases {
		cases = append(cases, newCaseResponse(&list.Cases[i]))
	}
	return CasesResponse{Cases: cases, Count: list.Count}
}

type PatientResponse struct {
	PatientID          id.PatientID `json:"patientID"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	DOB                *models.Date `json:"DOB"`
	ContactInfo        *string      `json:"contactInfo"`
	InsuranceInfo      *string      `json:"insuranceInfo"`
	ReturningPatient   bool         `json:"returningPatient"`
	LanguagePreference *string      `json:"languagePreference"`
	Verified           bool         `json:"verified"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func newPatientResponse(p *models.Patient) PatientResponse {
	return PatientResponse{
		PatientID:          p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		DOB:                p.DOB,
		ContactInfo:        p.ContactInfo,
		InsuranceInfo:      p.InsuranceInfo,
		ReturningPatient:   p.ReturningPatient,
		LanguagePreference: p.LanguagePreference,
		Verified:           p.Verified,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ChangelogEntryResponse is one field change. ChangedByEmail is empty when
// the author no longer exists.
type ChangelogEntryResponse struct {
	ID             string  `json:"id"`
	ChangedAt      string  `json:"changedAt"`
	FieldName      string  `json:"fieldName"`
	OldValue       *string `json:"oldValue"`
	NewValue       *string `json:"newValue"`
	ChangedByEmail string  `json:"changedByEmail"`
}

func newChangelogResponse(entries []changelog.EntryView) []ChangelogEntryResponse {
	out := make([]ChangelogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ChangelogEntryResponse{
			ID:             e.ID.String(),
			ChangedAt:      e.ChangedAt.UTC().Format(time.RFC3339Nano),
			FieldName:      e.FieldName,
			OldValue:       e.OldValue,
			NewValue:       e.NewValue,
			ChangedByEmail: e.ChangedByEmail,
		})
	}
	return out
}
