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

// ElectionRepository implements secondary.ElectionRepository.
type ElectionRepository struct {
	db *db.DB
}

// NewElectionRepository creates a new election repository.
func NewElectionRepository(database *db.DB) *ElectionRepository {
	return &ElectionRepository{db: database}
}

const electionColumns = "id, title, description, start_date, end_date, status, created_by, created_at, updated_at"

// Create persists a new election and sets its ID.
func (r *ElectionRepository) Create(ctx context.Context, e *secondary.ElectionRecord) error {
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO elections (title, description, start_date, end_date, status, created_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		e.Title,
		nullString(e.Description),
		e.StartDate.UTC(),
		e.EndDate.UTC(),
		e.Status,
		nullString(e.CreatedBy),
		e.CreatedAt.UTC(),
		e.UpdatedAt.UTC(),
	).Scan(&e.ID)
	if err != nil {
		if classify(err) == failConstraint {
			return fmt.Errorf("failed to create election: %w: %w", secondary.ErrConstraint, err)
		}
		return wrap("create election", err)
	}

	return nil
}

// GetByID retrieves an election by its ID.
func (r *ElectionRepository) GetByID(ctx context.Context, id int64) (*secondary.ElectionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+electionColumns+" FROM elections WHERE id = ?"), id)

	record, err := scanElection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("election %d %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get election", err)
	}

	return record, nil
}

// List retrieves elections matching the given filters, newest window first.
func (r *ElectionRepository) List(ctx context.Context, filters secondary.ElectionFilters) ([]*secondary.ElectionRecord, error) {
	query := "SELECT " + electionColumns + " FROM elections WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY start_date DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, wrap("list elections", err)
	}
	defer rows.Close()

	var elections []*secondary.ElectionRecord
	for rows.Next() {
		record, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list elections", err)
	}

	return elections, nil
}

// UpdateStatus sets the administrative status.
func (r *ElectionRepository) UpdateStatus(ctx context.Context, id int64, status string, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE elections SET status = ?, updated_at = ? WHERE id = ?"),
		status, updatedAt.UTC(), id)
	if err != nil {
		if classify(err) == failConstraint {
			return fmt.Errorf("failed to update election status: %w: %w", secondary.ErrConstraint, err)
		}
		return wrap("update election status", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("election %d %w", id, secondary.ErrNotFound)
	}

	return nil
}

// Delete removes an election and cascades to its candidates.
// The store refuses when ballots reference the election.
func (r *ElectionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM elections WHERE id = ?"), id)
	if err != nil {
		if referenced(err) {
			return fmt.Errorf("failed to delete election %d: %w: %w", id, secondary.ErrReferenced, err)
		}
		return wrap("delete election", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("election %d %w", id, secondary.ErrNotFound)
	}

	return nil
}

// CountBallots returns the number of ballots cast in an election.
func (r *ElectionRepository) CountBallots(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT COUNT(*) FROM ballots WHERE election_id = ?"), id).Scan(&count)
	if err != nil {
		return 0, wrap("count election ballots", err)
	}
	return count, nil
}

// CountByStatus returns the number of elections per stored status.
func (r *ElectionRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM elections GROUP BY status")
	if err != nil {
		return nil, wrap("count elections", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan election count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("count elections", err)
	}

	return counts, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanElection(s scanner) (*secondary.ElectionRecord, error) {
	var (
		description sql.NullString
		createdBy   sql.NullString
	)

	record := &secondary.ElectionRecord{}
	err := s.Scan(
		&record.ID,
		&record.Title,
		&description,
		&record.StartDate,
		&record.EndDate,
		&record.Status,
		&createdBy,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = description.String
	record.CreatedBy = createdBy.String
	record.StartDate = record.StartDate.UTC()
	record.EndDate = record.EndDate.UTC()
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()

	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure ElectionRepository implements the interface
var _ secondary.ElectionRepository = (*ElectionRepository)(nil)
