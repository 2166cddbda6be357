package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ballot/internal/db"
	"github.com/example/ballot/internal/models"
	"github.com/example/ballot/internal/ports/secondary"
)

// VoterRepository implements secondary.VoterRepository.
type VoterRepository struct {
	db *db.DB
}

// NewVoterRepository creates a new voter repository.
func NewVoterRepository(database *db.DB) *VoterRepository {
	return &VoterRepository{db: database}
}

const voterColumns = "id, name, email, role, created_at"

// Create persists a new voter.
func (r *VoterRepository) Create(ctx context.Context, v *secondary.VoterRecord) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind("INSERT INTO voters (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)"),
		v.ID, v.Name, nullString(v.Email), v.Role, v.CreatedAt.UTC())
	if err != nil {
		switch classify(err) {
		case failUnique, failConstraint:
			return fmt.Errorf("failed to create voter %s: %w: %w", v.ID, secondary.ErrConstraint, err)
		}
		return wrap("create voter", err)
	}
	return nil
}

// GetByID retrieves a voter by ID.
func (r *VoterRepository) GetByID(ctx context.Context, id string) (*secondary.VoterRecord, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT "+voterColumns+" FROM voters WHERE id = ?"), id)

	record, err := scanVoter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("voter %s %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get voter", err)
	}
	return record, nil
}

// List retrieves voters matching the given filters.
func (r *VoterRepository) List(ctx context.Context, filters secondary.VoterFilters) ([]*secondary.VoterRecord, error) {
	query := "SELECT " + voterColumns + " FROM voters WHERE 1=1"
	args := []any{}

	if filters.Role != "" {
		query += " AND role = ?"
		args = append(args, filters.Role)
	}

	query += " ORDER BY id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, wrap("list voters", err)
	}
	defer rows.Close()

	var voters []*secondary.VoterRecord
	for rows.Next() {
		record, err := scanVoter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list voters", err)
	}
	return voters, nil
}

// CountEligible returns the number of voters allowed to cast ballots.
func (r *VoterRepository) CountEligible(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT COUNT(*) FROM voters WHERE role = ?"), models.RoleVoter).Scan(&count)
	if err != nil {
		return 0, wrap("count eligible voters", err)
	}
	return count, nil
}

func scanVoter(s scanner) (*secondary.VoterRecord, error) {
	var email sql.NullString
	record := &secondary.VoterRecord{}
	if err := s.Scan(&record.ID, &record.Name, &email, &record.Role, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.Email = email.String
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

// Ensure VoterRepository implements the interface
var _ secondary.VoterRepository = (*VoterRepository)(nil)
