package triagecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"intake/internal/platform/postgres"
	"intake/internal/triage/models"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

// PostgresStore persists cases in the triage_cases table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const caseColumns = `case_id, patient_id, transcript, ai_urgency, override_urgency, ai_summary,
	override_summary, clinician_notes, status, date_created, review_reason, reviewed_by,
	review_timestamp, scheduled_date, created_at, updated_at`

func urgencyArg(u *models.Urgency) any {
	if u == nil {
		return nil
	}
	return string(*u)
}

func reviewerArg(u *id.UserID) any {
	if u == nil {
		return nil
	}
	return uuid.UUID(*u)
}

func (s *PostgresStore) Create(ctx context.Context, c *models.TriageCase) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO triage_cases (`+caseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		uuid.UUID(c.ID), uuid.UUID(c.PatientID), c.Transcript, urgencyArg(c.AIUrgency),
		urgencyArg(c.OverrideUrgency), c.AISummary, c.OverrideSummary, c.ClinicianNotes,
		string(c.Status), c.DateCreated, c.ReviewReason, reviewerArg(c.ReviewedBy),
		c.ReviewTimestamp, c.ScheduledDate, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("case %s: %w", c.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

func scanCase(row interface{ Scan(...any) error }) (*models.TriageCase, error) {
	var (
		c               models.TriageCase
		caseID          uuid.UUID
		patientID       uuid.UUID
		aiUrgency       sql.NullString
		overrideUrgency sql.NullString
		status          string
		reviewedBy      uuid.NullUUID
	)
	err := row.Scan(&caseID, &patientID, &c.Transcript, &aiUrgency, &overrideUrgency, &c.AISummary,
		&c.OverrideSummary, &c.ClinicianNotes, &status, &c.DateCreated, &c.ReviewReason, &reviewedBy,
		&c.ReviewTimestamp, &c.ScheduledDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("case not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("scan case: %w", err)
	}
	c.ID = id.CaseID(caseID)
	c.PatientID = id.PatientID(patientID)
	c.Status = models.CaseStatus(status)
	if aiUrgency.Valid {
		u := models.Urgency(aiUrgency.String)
		c.AIUrgency = &u
	}
	if overrideUrgency.Valid {
		u := models.Urgency(overrideUrgency.String)
		c.OverrideUrgency = &u
	}
	if reviewedBy.Valid {
		uid := id.UserID(reviewedBy.UUID)
		c.ReviewedBy = &uid
	}
	return &c, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, caseID id.CaseID) (*models.TriageCase, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+caseColumns+` FROM triage_cases WHERE case_id = $1`, uuid.UUID(caseID))
	return scanCase(row)
}

func statusArg(status *models.CaseStatus) any {
	if status == nil {
		return nil
	}
	return string(*status)
}

// List returns cases newest first.
func (s *PostgresStore) List(ctx context.Context, f Filter) ([]*models.TriageCase, error) {
	limit := any(nil)
	if f.Limit > 0 {
		limit = f.Limit
	}
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT `+caseColumns+` FROM triage_cases
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY date_created DESC, case_id
		LIMIT $2
	`, statusArg(f.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("query cases: %w", err)
	}
	defer rows.Close()

	var cases []*models.TriageCase
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context, status *models.CaseStatus) (int, error) {
	var n int
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT count(*) FROM triage_cases WHERE ($1::text IS NULL OR status = $1)`, statusArg(status),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count cases: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.TriageCase) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE triage_cases SET
			transcript = $2,
			ai_urgency = $3,
			override_urgency = $4,
			ai_summary = $5,
			override_summary = $6,
			clinician_notes = $7,
			status = $8,
			review_reason = $9,
			reviewed_by = $10,
			review_timestamp = $11,
			scheduled_date = $12,
			updated_at = $13
		WHERE case_id = $1
	`,
		uuid.UUID(c.ID), c.Transcript, urgencyArg(c.AIUrgency), urgencyArg(c.OverrideUrgency),
		c.AISummary, c.OverrideSummary, c.ClinicianNotes, string(c.Status), c.ReviewReason,
		reviewerArg(c.ReviewedBy), c.ReviewTimestamp, c.ScheduledDate, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("case not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, caseID id.CaseID) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM triage_cases WHERE case_id = $1`, uuid.UUID(caseID))
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("case not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
