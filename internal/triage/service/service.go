// Package service implements the triage case and patient operations. Every
// mutation diffs the record into the changelog inside the same transaction
// as the write, and every access is reported to the action auditor once the
// write has committed.
package service

import (
	"context"
	"errors"
	"log/slog"

	"intake/internal/audit/action"
	"intake/internal/audit/changelog"
	"intake/internal/triage/models"
	"intake/internal/triage/store/triagecase"
	id "intake/pkg/domain"
	dErrors "intake/pkg/domain-errors"
	"intake/pkg/platform/sentinel"
	"intake/pkg/platform/tx"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

type PatientStore interface {
	FindByID(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	Update(ctx context.Context, p *models.Patient) error
}

type CaseStore interface {
	Create(ctx context.Context, c *models.TriageCase) error
	FindByID(ctx context.Context, caseID id.CaseID) (*models.TriageCase, error)
	List(ctx context.Context, f triagecase.Filter) ([]*models.TriageCase, error)
	Count(ctx context.Context, status *models.CaseStatus) (int, error)
	Update(ctx context.Context, c *models.TriageCase) error
	Delete(ctx context.Context, caseID id.CaseID) error
}

// ChangeAuditor records field-level changes and reads them back.
type ChangeAuditor interface {
	Record(ctx context.Context, parent changelog.Parent, old changelog.Snapshot, proposed []changelog.FieldValue, actor id.UserID, opts ...changelog.DiffOption) (int, error)
	List(ctx context.Context, parent changelog.Parent) ([]changelog.EntryView, error)
	PreviousValue(ctx context.Context, parent changelog.Parent, field string) (*string, error)
}

// ActionAuditor records who accessed what. It never fails the caller.
type ActionAuditor interface {
	Record(ctx context.Context, ev action.Event) bool
}

// EmailLookup resolves reviewer emails for case views.
type EmailLookup interface {
	EmailsByID(ctx context.Context, ids []id.UserID) (map[id.UserID]string, error)
}

const (
	DefaultListLimit = 100

	MessageCaseDeleted = "Triage case deleted successfully"
)

type Service struct {
	patients PatientStore
	cases    CaseStore
	changes  ChangeAuditor
	actions  ActionAuditor
	emails   EmailLookup
	tx       tx.Runner
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTxRunner sets the unit of work for mutations. Defaults to tx.Direct.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		if r != nil {
			s.tx = r
		}
	}
}

func New(patients PatientStore, cases CaseStore, changes ChangeAuditor, actions ActionAuditor, emails EmailLookup, opts ...Option) *Service {
	s := &Service{
		patients: patients,
		cases:    cases,
		changes:  changes,
		actions:  actions,
		emails:   emails,
		tx:       tx.Direct,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func fieldValues(changes []models.Change) []changelog.FieldValue {
	out := make([]changelog.FieldValue, len(changes))
	for i, c := range changes {
		out[i] = changelog.FieldValue{Name: c.Field, Value: c.Value}
	}
	return out
}

func fieldNames(changes []models.Change) []string {
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = c.Field
	}
	return out
}

// translate maps store sentinels onto domain errors. Errors that already
// carry a code pass through.
func translate(err error, notFound, internal string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, notFound)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internal)
}
