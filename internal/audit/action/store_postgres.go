package action

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"intake/internal/platform/postgres"
	id "intake/pkg/domain"
)

// PostgresStore persists entries in the audit_log table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func nullableUUID(u uuid.UUID) any {
	if u == uuid.Nil {
		return nil
	}
	return u
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	var details []byte
	if len(entry.Details) > 0 {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
	}
	var fields any
	if len(entry.FieldsModified) > 0 {
		fields = pq.Array(entry.FieldsModified)
	}

	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO audit_log (
			id, action, status, actor_id, actor_role, resource_type,
			resource_id, fields_modified, details, ip, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.UUID(entry.ID),
		string(entry.Action),
		string(entry.Status),
		nullableUUID(uuid.UUID(entry.ActorID)),
		entry.ActorRole,
		string(entry.ResourceType),
		nullableUUID(entry.ResourceID),
		fields,
		details,
		entry.IP,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByResource returns entries for a resource oldest first.
func (s *PostgresStore) ListByResource(ctx context.Context, resourceType ResourceType, resourceID uuid.UUID) ([]Entry, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT id, action, status, actor_id, actor_role, resource_type,
		       resource_id, fields_modified, details, ip, created_at
		FROM audit_log
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at
	`, string(resourceType), resourceID)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			entryID    uuid.UUID
			actorID    uuid.NullUUID
			resourceID uuid.NullUUID
			role       sql.NullString
			ip         sql.NullString
			details    []byte
			action     string
			status     string
			resType    string
		)
		if err := rows.Scan(&entryID, &action, &status, &actorID, &role, &resType,
			&resourceID, pq.Array(&e.FieldsModified), &details, &ip, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.ID = id.AuditID(entryID)
		e.Action = Action(action)
		e.Status = Status(status)
		e.ResourceType = ResourceType(resType)
		e.ActorRole = role.String
		e.IP = ip.String
		if actorID.Valid {
			e.ActorID = id.UserID(actorID.UUID)
		}
		if resourceID.Valid {
			e.ResourceID = resourceID.UUID
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
