package service

import (
	"context"

	"github.com/google/uuid"

	"intake/internal/audit/action"
	"intake/internal/audit/changelog"
	"intake/internal/triage/models"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/requestcontext"
)

func (s *Service) GetPatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	p, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, translate(err, msgPatientNotFound, "failed to retrieve patient")
	}
	s.actions.Record(ctx, action.Event{
		Action:       action.ViewPatient,
		ResourceType: action.ResourcePatient,
		ResourceID:   uuid.UUID(p.ID),
	})
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, patientID id.PatientID, changes []models.Change) (*models.Patient, error) {
	actor := requestcontext.UserID(ctx)
	var updated *models.Patient
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.patients.FindByID(ctx, patientID)
		if err != nil {
			return translate(err, msgPatientNotFound, "failed to update patient")
		}
		if len(changes) == 0 {
			return dErrors.New(dErrors.CodeBadRequest, msgNoFields)
		}
		before := p.Snapshot()
		p.Apply(changes)
		p.UpdatedAt = requestcontext.Now(ctx)
		if err := s.patients.Update(ctx, p); err != nil {
			return err
		}
		if _, err := s.changes.Record(ctx, changelog.PatientParent(p.ID), before, fieldValues(changes), actor); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, translate(err, msgPatientNotFound, "failed to update patient")
	}

	s.actions.Record(ctx, action.Event{
		Action:         action.UpdatePatient,
		ResourceType:   action.ResourcePatient,
		ResourceID:     uuid.UUID(patientID),
		FieldsModified: fieldNames(changes),
	})
	return updated, nil
}

// PatientChangelog lists a patient's changes newest first.
func (s *Service) PatientChangelog(ctx context.Context, patientID id.PatientID) ([]changelog.EntryView, error) {
	if _, err := s.patients.FindByID(ctx, patientID); err != nil {
		return nil, translate(err, msgPatientNotFound, "failed to retrieve patient changelog")
	}
	entries, err := s.changes.List(ctx, changelog.PatientParent(patientID))
	if err != nil {
		return nil, translate(err, msgPatientNotFound, "failed to retrieve patient changelog")
	}
	return entries, nil
}
