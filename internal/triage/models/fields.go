package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
)

// Field names as they appear in request bodies and the changelog.
const (
	FieldFirstName          = "firstName"
	FieldLastName           = "lastName"
	FieldDOB                = "DOB"
	FieldContactInfo        = "contactInfo"
	FieldInsuranceInfo      = "insuranceInfo"
	FieldReturningPatient   = "returningPatient"
	FieldLanguagePreference = "languagePreference"
	FieldVerified           = "verified"

	FieldPatientID       = "patientID"
	FieldTranscript      = "transcript"
	FieldAIUrgency       = "AIUrgency"
	FieldOverrideUrgency = "overrideUrgency"
	FieldAISummary       = "AISummary"
	FieldOverrideSummary = "overrideSummary"
	FieldClinicianNotes  = "clinicianNotes"
	FieldStatus          = "status"
	FieldReviewReason    = "reviewReason"
	FieldReviewedBy      = "reviewedBy"
	FieldReviewTimestamp = "reviewTimestamp"
	FieldScheduledDate   = "scheduledDate"
)

// PatientFields lists the editable patient fields in declaration order.
var PatientFields = []string{
	FieldFirstName, FieldLastName, FieldDOB, FieldContactInfo, FieldInsuranceInfo,
	FieldReturningPatient, FieldLanguagePreference, FieldVerified,
}

// CaseFields lists the case fields a generic update may carry.
var CaseFields = []string{
	FieldTranscript, FieldAIUrgency, FieldOverrideUrgency, FieldAISummary,
	FieldOverrideSummary, FieldClinicianNotes, FieldStatus, FieldReviewReason, FieldScheduledDate,
}

// CreateCaseFields lists the case fields accepted when a case is opened.
// Review state is only ever set by a review.
var CreateCaseFields = []string{
	FieldTranscript, FieldAIUrgency, FieldOverrideUrgency, FieldAISummary,
	FieldOverrideSummary, FieldClinicianNotes, FieldScheduledDate,
}

// Change assigns Value to Field. A nil Value clears an optional field.
type Change struct {
	Field string
	Value any
}

// DecodeChanges picks the listed fields out of a JSON object, in list order,
// and decodes each to its typed value. Unlisted keys are ignored.
func DecodeChanges(raw map[string]json.RawMessage, fields []string) ([]Change, error) {
	var changes []Change
	for _, f := range fields {
		msg, ok := raw[f]
		if !ok {
			continue
		}
		v, err := decodeField(f, msg)
		if err != nil {
			return nil, err
		}
		changes = append(changes, Change{Field: f, Value: v})
	}
	return changes, nil
}

func isNull(msg json.RawMessage) bool {
	return strings.TrimSpace(string(msg)) == "null"
}

func invalidField(field string, err error) error {
	return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid value for %s", field))
}

func decodeField(field string, msg json.RawMessage) (any, error) {
	switch field {
	case FieldFirstName, FieldLastName:
		var s string
		if err := json.Unmarshal(msg, &s); err != nil || isNull(msg) {
			return nil, invalidField(field, err)
		}
		if strings.TrimSpace(s) == "" {
			return nil, dErrors.New(dErrors.CodeValidation, field+" cannot be empty")
		}
		return strings.TrimSpace(s), nil

	case FieldReturningPatient, FieldVerified:
		var b bool
		if err := json.Unmarshal(msg, &b); err != nil || isNull(msg) {
			return nil, invalidField(field, err)
		}
		return b, nil

	case FieldDOB:
		var d *Date
		if err := json.Unmarshal(msg, &d); err != nil {
			return nil, invalidField(field, err)
		}
		return d, nil

	case FieldAIUrgency, FieldOverrideUrgency:
		var s *string
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, invalidField(field, err)
		}
		if s == nil {
			return (*Urgency)(nil), nil
		}
		u, err := ParseUrgency(*s)
		if err != nil {
			return nil, err
		}
		return &u, nil

	case FieldStatus:
		var s string
		if err := json.Unmarshal(msg, &s); err != nil || isNull(msg) {
			return nil, invalidField(field, err)
		}
		return ParseCaseStatus(s)

	case FieldScheduledDate:
		var t *time.Time
		if err := json.Unmarshal(msg, &t); err != nil {
			return nil, invalidField(field, err)
		}
		return t, nil

	default:
		var s *string
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, invalidField(field, err)
		}
		return s, nil
	}
}

// Snapshot returns the patient's current values keyed by field name.
func (p *Patient) Snapshot() map[string]any {
	return map[string]any{
		"id":                    p.ID,
		FieldFirstName:          p.FirstName,
		FieldLastName:           p.LastName,
		FieldDOB:                p.DOB,
		FieldContactInfo:        p.ContactInfo,
		FieldInsuranceInfo:      p.InsuranceInfo,
		FieldReturningPatient:   p.ReturningPatient,
		FieldLanguagePreference: p.LanguagePreference,
		FieldVerified:           p.Verified,
		"createdAt":             p.CreatedAt,
		"updatedAt":             p.UpdatedAt,
	}
}

// Apply assigns changes produced by DecodeChanges.
func (p *Patient) Apply(changes []Change) {
	for _, c := range changes {
		switch c.Field {
		case FieldFirstName:
			p.FirstName = c.Value.(string)
		case FieldLastName:
			p.LastName = c.Value.(string)
		case FieldDOB:
			p.DOB = c.Value.(*Date)
		case FieldContactInfo:
			p.ContactInfo = c.Value.(*string)
		case FieldInsuranceInfo:
			p.InsuranceInfo = c.Value.(*string)
		case FieldReturningPatient:
			p.ReturningPatient = c.Value.(bool)
		case FieldLanguagePreference:
			p.LanguagePreference = c.Value.(*string)
		case FieldVerified:
			p.Verified = c.Value.(bool)
		}
	}
}

// Snapshot returns the case's current values keyed by field name.
func (c *TriageCase) Snapshot() map[string]any {
	return map[string]any{
		"id":                 c.ID,
		FieldPatientID:       c.PatientID,
		FieldTranscript:      c.Transcript,
		FieldAIUrgency:       c.AIUrgency,
		FieldOverrideUrgency: c.OverrideUrgency,
		FieldAISummary:       c.AISummary,
		FieldOverrideSummary: c.OverrideSummary,
		FieldClinicianNotes:  c.ClinicianNotes,
		FieldStatus:          c.Status,
		FieldReviewReason:    c.ReviewReason,
		FieldReviewedBy:      c.ReviewedBy,
		FieldReviewTimestamp: c.ReviewTimestamp,
		FieldScheduledDate:   c.ScheduledDate,
		"createdAt":          c.CreatedAt,
		"updatedAt":          c.UpdatedAt,
	}
}

// Apply assigns changes produced by DecodeChanges or a review.
func (c *TriageCase) Apply(changes []Change) {
	for _, ch := range changes {
		switch ch.Field {
		case FieldTranscript:
			c.Transcript = ch.Value.(*string)
		case FieldAIUrgency:
			c.AIUrgency = ch.Value.(*Urgency)
		case FieldOverrideUrgency:
			c.OverrideUrgency = ch.Value.(*Urgency)
		case FieldAISummary:
			c.AISummary = ch.Value.(*string)
		case FieldOverrideSummary:
			c.OverrideSummary = ch.Value.(*string)
		case FieldClinicianNotes:
			c.ClinicianNotes = ch.Value.(*string)
		case FieldStatus:
			c.Status = ch.Value.(CaseStatus)
		case FieldReviewReason:
			c.ReviewReason = ch.Value.(*string)
		case FieldReviewedBy:
			c.ReviewedBy = ch.Value.(*id.UserID)
		case FieldReviewTimestamp:
			c.ReviewTimestamp = ch.Value.(*time.Time)
		case FieldScheduledDate:
			c.ScheduledDate = ch.Value.(*time.Time)
		}
	}
}
