package changelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"intake/internal/platform/postgres"
	id "intake/pkg/domain"
	"intake/pkg/platform/sentinel"
)

// PostgresStore persists entries in the changelog table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entries []Entry) error {
	conn := postgres.Conn(ctx, s.db)
	for _, e := range entries {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO changelog (id, parent_kind, parent_id, field_name, old_value, new_value, changed_by, changed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			uuid.UUID(e.ID),
			string(e.Parent.Kind),
			e.Parent.ID,
			e.FieldName,
			e.OldValue,
			e.NewValue,
			uuid.UUID(e.ChangedBy),
			e.ChangedAt,
		)
		if err != nil {
			return fmt.Errorf("insert changelog entry %s: %w", e.FieldName, err)
		}
	}
	return nil
}

const selectEntries = `
	SELECT id, parent_kind, parent_id, field_name, old_value, new_value, changed_by, changed_at
	FROM changelog
`

func (s *PostgresStore) ListByParent(ctx context.Context, parent Parent) ([]Entry, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, selectEntries+`
		WHERE parent_kind = $1 AND parent_id = $2
		ORDER BY changed_at DESC, seq DESC
	`, string(parent.Kind), parent.ID)
	if err != nil {
		return nil, fmt.Errorf("query changelog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) LatestForField(ctx context.Context, parent Parent, field string) (*Entry, error) {
	row := postgres.Conn(ctx, s.db).QueryRowContext(ctx, selectEntries+`
		WHERE parent_kind = $1 AND parent_id = $2 AND field_name = $3
		ORDER BY changed_at DESC, seq DESC
		LIMIT 1
	`, string(parent.Kind), parent.ID, field)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("changelog %s: %w", field, sentinel.ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e         Entry
		entryID   uuid.UUID
		kind      string
		changedBy uuid.UUID
		oldValue  sql.NullString
		newValue  sql.NullString
	)
	if err := row.Scan(&entryID, &kind, &e.Parent.ID, &e.FieldName, &oldValue, &newValue, &changedBy, &e.ChangedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan changelog entry: %w", err)
	}
	e.ID = id.ChangelogID(entryID)
	e.Parent.Kind = ParentKind(kind)
	e.ChangedBy = id.UserID(changedBy)
	if oldValue.Valid {
		e.OldValue = &oldValue.String
	}
	if newValue.Valid {
		e.NewValue = &newValue.String
	}
	return &e, nil
}
