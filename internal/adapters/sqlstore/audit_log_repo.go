package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/ballot/internal/db"
	"github.com/example/ballot/internal/ports/secondary"
)

// AuditLogRepository implements secondary.AuditLogRepository.
type AuditLogRepository struct {
	db *db.DB
}

// NewAuditLogRepository creates a new audit log repository.
func NewAuditLogRepository(database *db.DB) *AuditLogRepository {
	return &AuditLogRepository{db: database}
}

const auditLogColumns = "id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at"

// Create persists a new audit entry and sets its ID.
func (r *AuditLogRepository) Create(ctx context.Context, entry *secondary.AuditLogRecord) error {
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO audit_log (actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		nullString(entry.ActorID),
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		nullString(entry.FieldName),
		nullString(entry.OldValue),
		nullString(entry.NewValue),
		entry.CreatedAt.UTC(),
	).Scan(&entry.ID)
	if err != nil {
		return wrap("create audit log entry", err)
	}

	return nil
}

// GetByID retrieves an audit entry by its ID.
func (r *AuditLogRepository) GetByID(ctx context.Context, id int64) (*secondary.AuditLogRecord, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT "+auditLogColumns+" FROM audit_log WHERE id = ?"), id)

	record, err := scanAuditLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("audit log entry %d %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get audit log entry", err)
	}

	return record, nil
}

// List retrieves audit entries matching the given filters, newest first.
func (r *AuditLogRepository) List(ctx context.Context, filters secondary.AuditLogFilters) ([]*secondary.AuditLogRecord, error) {
	query := "SELECT " + auditLogColumns + " FROM audit_log WHERE 1=1"
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, wrap("list audit log", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditLogRecord
	for rows.Next() {
		record, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entries = append(entries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list audit log", err)
	}

	return entries, nil
}

// PruneOlderThan deletes entries created before cutoff.
func (r *AuditLogRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM audit_log WHERE created_at < ?"), cutoff.UTC())
	if err != nil {
		return 0, wrap("prune audit log", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

func scanAuditLog(s scanner) (*secondary.AuditLogRecord, error) {
	var (
		actorID   sql.NullString
		fieldName sql.NullString
		oldValue  sql.NullString
		newValue  sql.NullString
	)

	record := &secondary.AuditLogRecord{}
	err := s.Scan(&record.ID,
		&actorID,
		&record.EntityType,
		&record.EntityID,
		&record.Action,
		&fieldName,
		&oldValue,
		&newValue,
		&record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.ActorID = actorID.String
	record.FieldName = fieldName.String
	record.OldValue = oldValue.String
	record.NewValue = newValue.String
	record.CreatedAt = record.CreatedAt.UTC()

	return record, nil
}

// Ensure AuditLogRepository implements the interface
var _ secondary.AuditLogRepository = (*AuditLogRepository)(nil)
