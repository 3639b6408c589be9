package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"intake/internal/auth/models"
	"intake/internal/platform/postgres"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

// PostgresStore persists users in the users table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `user_id, email, password_hash, role, first_name, last_name, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var (
		u     models.User
		rawID uuid.UUID
	)
	if err := row.Scan(&rawID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(rawID)
	return &u, nil
}

func (s *PostgresStore) Save(ctx context.Context, user *models.User) error {
	now := user.UpdatedAt
	if now.IsZero() {
		now = time.Now()
	}
	created := user.CreatedAt
	if created.IsZero() {
		created = now
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			role = EXCLUDED.role,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(user.ID), user.Email, user.PasswordHash, user.Role,
		user.FirstName, user.LastName, user.IsActive, created, now,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", user.Email, sentinel.ErrConflict)
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, uuid.UUID(userID))
	return scanUser(row)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

// SetPassword replaces the credential hash and activates the user.
func (s *PostgresStore) SetPassword(ctx context.Context, userID id.UserID, passwordHash string, now time.Time) error {
	res, err := postgres.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE users SET password_hash = $2, is_active = TRUE, updated_at = $3 WHERE user_id = $1`,
		uuid.UUID(userID), passwordHash, now)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set password rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// EmailsByID resolves display emails for changelog listings. Unknown IDs are omitted.
func (s *PostgresStore) EmailsByID(ctx context.Context, ids []id.UserID) (map[id.UserID]string, error) {
	out := make(map[id.UserID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	raw := make([]string, len(ids))
	for i, userID := range ids {
		raw[i] = userID.String()
	}
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT user_id, email FROM users WHERE user_id = ANY($1::uuid[])`, pq.Array(raw))
	if err != nil {
		return nil, fmt.Errorf("query user emails: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rawID uuid.UUID
			email string
		)
		if err := rows.Scan(&rawID, &email); err != nil {
			return nil, fmt.Errorf("scan user email: %w", err)
		}
		out[id.UserID(rawID)] = email
	}
	return out, rows.Err()
}
