package handler

import (
	"encoding/json"
	"time"

	"intake/internal/triage/models"
	id "intake/pkg/domain"
)

// caseUpdateFields are the fields a generic case update routes: patient
// demographics first, then case fields.
var caseUpdateFields = append(append([]string{}, models.PatientFields...), models.CaseFields...)

// PatchRequest is a partial update keyed by field name. Only the keys
// present are changed; null clears optional fields.
type PatchRequest map[string]json.RawMessage

// CreateCaseRequest names the patient and carries the initial case fields.
type CreateCaseRequest struct {
	PatientID id.PatientID
	Fields    map[string]json.RawMessage
}

func (r *CreateCaseRequest) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.Fields)
}

// Validate resolves patientID from the body.
func (r *CreateCaseRequest) Validate() error {
	var raw string
	if msg, ok := r.Fields[models.FieldPatientID]; ok {
		if err := json.Unmarshal(msg, &raw); err != nil {
			raw = ""
		}
	}
	patientID, err := id.ParsePatientID(raw)
	if err != nil {
		return err
	}
	r.PatientID = patientID
	return nil
}

type ReviewRequest struct {
	ReviewReason  string     `json:"reviewReason"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}
