package patient

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

// PostgresStore persists patients in the patients table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const patientColumns = `patient_id, first_name, last_name, dob, contact_info, insurance_info,
	returning_patient, language_preference, verified, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *models.Patient) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO patients (`+patientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.UUID(p.ID), p.FirstName, p.LastName, p.DOB, p.ContactInfo, p.InsuranceInfo,
		p.ReturningPatient, p.LanguagePreference, p.Verified, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("patient %s: %w", p.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE patient_id = $1`, uuid.UUID(patientID))

	var (
		p     models.Patient
		rawID uuid.UUID
		dob   *models.Date
	)
	err := row.Scan(&rawID, &p.FirstName, &p.LastName, &dob, &p.ContactInfo, &p.InsuranceInfo,
		&p.ReturningPatient, &p.LanguagePreference, &p.Verified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("patient not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("scan patient: %w", err)
	}
	p.ID = id.PatientID(rawID)
	p.DOB = dob
	return &p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Patient) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE patients SET
			first_name = $2,
			last_name = $3,
			dob = $4,
			contact_info = $5,
			insurance_info = $6,
			returning_patient = $7,
			language_preference = $8,
			verified = $9,
			updated_at = $10
		WHERE patient_id = $1
	`,
		uuid.UUID(p.ID), p.FirstName, p.LastName, p.DOB, p.ContactInfo, p.InsuranceInfo,
		p.ReturningPatient, p.LanguagePreference, p.Verified, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("patient not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
