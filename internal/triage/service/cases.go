package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"intake/internal/audit/action"
	"intake/internal/audit/changelog"
	"intake/internal/triage/models"
	"intake/internal/triage/store/triagecase"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/requestcontext"
)

const (
	msgCaseNotFound    = "Triage case not found"
	msgPatientNotFound = "Patient not found"
	msgNoFields        = "No fields to update"
)

// CaseView is a case as clients see it: the case, its patient's
// demographics, who reviewed it, and the urgency an override replaced.
type CaseView struct {
	Case            models.TriageCase
	Patient         models.Patient
	ReviewedByEmail *string
	PreviousUrgency *string
}

type CaseList struct {
	Cases []CaseView
	Count int
}

// ReviewInput carries a clinician's sign-off.
type ReviewInput struct {
	Reason        string
	ScheduledDate *time.Time
}

// ListCases returns up to limit cases newest first, with the total count
// matching status. A nil status lists every case.
func (s *Service) ListCases(ctx context.Context, status *models.CaseStatus, limit int) (*CaseList, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	count, err := s.cases.Count(ctx, status)
	if err != nil {
		return nil, translate(err, msgCaseNotFound, "failed to retrieve triage cases")
	}
	cases, err := s.cases.List(ctx, triagecase.Filter{Status: status, Limit: limit})
	if err != nil {
		return nil, translate(err, msgCaseNotFound, "failed to retrieve triage cases")
	}
	views, err := s.views(ctx, cases)
	if err != nil {
		return nil, err
	}

	details := map[string]any{"limit": limit, "returned_count": len(views)}
	if status != nil {
		details["status_filter"] = string(*status)
	}
	s.actions.Record(ctx, action.Event{
		Action:       action.ListCases,
		ResourceType: action.ResourceTriageCase,
		Details:      details,
	})
	return &CaseList{Cases: views, Count: count}, nil
}

func (s *Service) GetCase(ctx context.Context, caseID id.CaseID) (*CaseView, error) {
	c, err := s.cases.FindByID(ctx, caseID)
	if err != nil {
		return nil, translate(err, msgCaseNotFound, "failed to retrieve triage case")
	}
	view, err := s.view(ctx, c)
	if err != nil {
		return nil, err
	}
	s.actions.Record(ctx, action.Event{
		Action:       action.ViewCase,
		ResourceType: action.ResourceTriageCase,
		ResourceID:   uuid.UUID(c.ID),
	})
	return view, nil
}

// CreateCase opens an unreviewed case for an existing patient.
func (s *Service) CreateCase(ctx context.Context, patientID id.PatientID, changes []models.Change) (*CaseView, error) {
	now := requestcontext.Now(ctx)
	c := &models.TriageCase{
		ID:          id.NewCaseID(),
		PatientID:   patientID,
		Status:      models.StatusUnreviewed,
		DateCreated: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.Apply(changes)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.patients.FindByID(ctx, patientID); err != nil {
			return translate(err, msgPatientNotFound, "failed to create triage case")
		}
		return s.cases.Create(ctx, c)
	})
	if err != nil {
		return nil, translate(err, msgPatientNotFound, "failed to create triage case")
	}
	s.logger.InfoContext(ctx, "triage case created",
		"case_id", c.ID.String(),
		"patient_id", patientID.String(),
	)

	s.actions.Record(ctx, action.Event{
		Action:         action.CreateCase,
		ResourceType:   action.ResourceTriageCase,
		ResourceID:     uuid.UUID(c.ID),
		FieldsModified: append([]string{models.FieldPatientID}, fieldNames(changes)...),
	})
	return s.view(ctx, c)
}

// reviewsThroughUpdate reports whether changes would mark the case reviewed
// or attach a review reason.
func reviewsThroughUpdate(changes []models.Change) bool {
	for _, ch := range changes {
		switch ch.Field {
		case models.FieldStatus:
			if ch.Value == models.StatusReviewed {
				return true
			}
		case models.FieldReviewReason:
			if r, ok := ch.Value.(*string); ok && r != nil && *r != "" {
				return true
			}
		}
	}
	return false
}

func splitChanges(changes []models.Change) (patient, triage []models.Change) {
	for _, ch := range changes {
		if slices.Contains(models.PatientFields, ch.Field) {
			patient = append(patient, ch)
		} else {
			triage = append(triage, ch)
		}
	}
	return patient, triage
}

// UpdateCase applies a generic edit. Patient fields are written to the
// case's patient and case fields to the case, each with its own changelog,
// in one transaction. Review state cannot be set here.
func (s *Service) UpdateCase(ctx context.Context, caseID id.CaseID, changes []models.Change) (*CaseView, error) {
	if reviewsThroughUpdate(changes) {
		return nil, dErrors.New(dErrors.CodeForbidden, "Triage case cannot be reviewed through generic update")
	}
	patientChanges, caseChanges := splitChanges(changes)
	actor := requestcontext.UserID(ctx)
	now := requestcontext.Now(ctx)

	var (
		updated   *models.TriageCase
		patientID id.PatientID
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.cases.FindByID(ctx, caseID)
		if err != nil {
			return translate(err, msgCaseNotFound, "failed to update triage case")
		}
		if len(changes) == 0 {
			return dErrors.New(dErrors.CodeBadRequest, msgNoFields)
		}

		if len(patientChanges) > 0 {
			p, err := s.patients.FindByID(ctx, c.PatientID)
			if err != nil {
				return translate(err, msgPatientNotFound, "failed to update triage case")
			}
			before := p.Snapshot()
			p.Apply(patientChanges)
			p.UpdatedAt = now
			if err := s.patients.Update(ctx, p); err != nil {
				return err
			}
			if _, err := s.changes.Record(ctx, changelog.PatientParent(p.ID), before, fieldValues(patientChanges), actor); err != nil {
				return err
			}
			patientID = p.ID
		}

		if len(caseChanges) > 0 {
			before := c.Snapshot()
			c.Apply(caseChanges)
			c.UpdatedAt = now
			if err := s.cases.Update(ctx, c); err != nil {
				return err
			}
			if _, err := s.changes.Record(ctx, changelog.CaseParent(c.ID), before, fieldValues(caseChanges), actor); err != nil {
				return err
			}
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, translate(err, msgCaseNotFound, "failed to update triage case")
	}

	if len(patientChanges) > 0 {
		s.actions.Record(ctx, action.Event{
			Action:         action.UpdatePatient,
			ResourceType:   action.ResourcePatient,
			ResourceID:     uuid.UUID(patientID),
			FieldsModified: fieldNames(patientChanges),
		})
	}
	if len(caseChanges) > 0 {
		s.actions.Record(ctx, action.Event{
			Action:         action.UpdateCase,
			ResourceType:   action.ResourceTriageCase,
			ResourceID:     uuid.UUID(caseID),
			FieldsModified: fieldNames(caseChanges),
		})
	}
	return s.view(ctx, updated)
}

func (s *Service) DeleteCase(ctx context.Context, caseID id.CaseID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.cases.Delete(ctx, caseID)
	})
	if err != nil {
		return translate(err, msgCaseNotFound, "failed to delete triage case")
	}
	s.logger.InfoContext(ctx, "triage case deleted", "case_id", caseID.String())

	s.actions.Record(ctx, action.Event{
		Action:       action.DeleteCase,
		ResourceType: action.ResourceTriageCase,
		ResourceID:   uuid.UUID(caseID),
	})
	return nil
}

// ReviewCase signs off an unreviewed case. The reviewer is not written to
// the changelog; it is already the entry's author.
func (s *Service) ReviewCase(ctx context.Context, caseID id.CaseID, in ReviewInput) (*CaseView, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "Review reason is required and cannot be empty")
	}
	actor := requestcontext.UserID(ctx)
	now := requestcontext.Now(ctx)
	reason := in.Reason

	changes := []models.Change{
		{Field: models.FieldStatus, Value: models.StatusReviewed},
		{Field: models.FieldReviewReason, Value: &reason},
		{Field: models.FieldReviewedBy, Value: &actor},
		{Field: models.FieldReviewTimestamp, Value: &now},
	}
	if in.ScheduledDate != nil {
		changes = append(changes, models.Change{Field: models.FieldScheduledDate, Value: in.ScheduledDate})
	}

	var reviewed *models.TriageCase
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.cases.FindByID(ctx, caseID)
		if err != nil {
			return translate(err, msgCaseNotFound, "failed to review triage case")
		}
		if c.IsReviewed() {
			return dErrors.New(dErrors.CodeBadRequest, "Case is already reviewed")
		}
		before := c.Snapshot()
		c.Apply(changes)
		c.UpdatedAt = now
		if err := s.cases.Update(ctx, c); err != nil {
			return err
		}
		if _, err := s.changes.Record(ctx, changelog.CaseParent(c.ID), before, fieldValues(changes), actor,
			changelog.ExcludeFields(models.FieldReviewedBy)); err != nil {
			return err
		}
		reviewed = c
		return nil
	})
	if err != nil {
		return nil, translate(err, msgCaseNotFound, "failed to review triage case")
	}

	s.actions.Record(ctx, action.Event{
		Action:         action.ReviewCase,
		ResourceType:   action.ResourceTriageCase,
		ResourceID:     uuid.UUID(caseID),
		FieldsModified: fieldNames(changes),
	})
	return s.view(ctx, reviewed)
}

// CaseChangelog lists a case's changes newest first.
func (s *Service) CaseChangelog(ctx context.Context, caseID id.CaseID) ([]changelog.EntryView, error) {
	if _, err := s.cases.FindByID(ctx, caseID); err != nil {
		return nil, translate(err, msgCaseNotFound, "failed to retrieve case changelog")
	}
	entries, err := s.changes.List(ctx, changelog.CaseParent(caseID))
	if err != nil {
		return nil, translate(err, msgCaseNotFound, "failed to retrieve case changelog")
	}
	return entries, nil
}

func (s *Service) view(ctx context.Context, c *models.TriageCase) (*CaseView, error) {
	views, err := s.views(ctx, []*models.TriageCase{c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Service) views(ctx context.Context, cases []*models.TriageCase) ([]CaseView, error) {
	var reviewers []id.UserID
	for _, c := range cases {
		if c.ReviewedBy != nil {
			reviewers = append(reviewers, *c.ReviewedBy)
		}
	}
	emails := map[id.UserID]string{}
	if len(reviewers) > 0 {
		var err error
		emails, err = s.emails.EmailsByID(ctx, reviewers)
		if err != nil {
			return nil, translate(err, msgCaseNotFound, "failed to resolve reviewers")
		}
	}

	views := make([]CaseView, 0, len(cases))
	for _, c := range cases {
		p, err := s.patients.FindByID(ctx, c.PatientID)
		if err != nil {
			return nil, translate(err, msgPatientNotFound, "failed to load patient")
		}
		v := CaseView{Case: *c, Patient: *p}
		if c.ReviewedBy != nil {
			if email, ok := emails[*c.ReviewedBy]; ok {
				v.ReviewedByEmail = &email
			}
		}
		if c.OverrideUrgency != nil {
			prev, err := s.changes.PreviousValue(ctx, changelog.CaseParent(c.ID), models.FieldOverrideUrgency)
			if err != nil {
				return nil, translate(err, msgCaseNotFound, "failed to load urgency history")
			}
			v.PreviousUrgency = prev
		}
		views = append(views, v)
	}
	return views, nil
}
