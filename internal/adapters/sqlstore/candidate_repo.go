package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ballot/internal/db"
	"github.com/example/ballot/internal/ports/secondary"
)

// CandidateRepository implements secondary.CandidateRepository.
type CandidateRepository struct {
	db *db.DB
}

// NewCandidateRepository creates a new candidate repository.
func NewCandidateRepository(database *db.DB) *CandidateRepository {
	return &CandidateRepository{db: database}
}

const candidateColumns = "id, election_id, name, position, profile, photo_url, votes, created_at"

// Create persists a new candidate with a zero counter and sets its ID.
func (r *CandidateRepository) Create(ctx context.Context, c *secondary.CandidateRecord) error {
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO candidates (election_id, name, position, profile, photo_url, votes, created_at)
			VALUES (?, ?, ?, ?, ?, 0, ?) RETURNING id`),
		c.ElectionID,
		c.Name,
		c.Position,
		nullString(c.Profile),
		nullString(c.PhotoURL),
		c.CreatedAt.UTC(),
	).Scan(&c.ID)
	if err != nil {
		if classify(err) == failForeignKey {
			return fmt.Errorf("election %d %w", c.ElectionID, secondary.ErrNotFound)
		}
		return wrap("create candidate", err)
	}

	c.Votes = 0
	return nil
}

// GetByID retrieves a candidate by its ID.
func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*secondary.CandidateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+candidateColumns+" FROM candidates WHERE id = ?"), id)

	record, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate %d %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get candidate", err)
	}

	return record, nil
}

// ListByElection retrieves an election's candidates in ID order.
func (r *CandidateRepository) ListByElection(ctx context.Context, electionID int64) ([]*secondary.CandidateRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		r.db.Rebind("SELECT "+candidateColumns+" FROM candidates WHERE election_id = ? ORDER BY id"), electionID)
	if err != nil {
		return nil, wrap("list candidates", err)
	}
	defer rows.Close()

	var candidates []*secondary.CandidateRecord
	for rows.Next() {
		record, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list candidates", err)
	}

	return candidates, nil
}

// Delete removes a candidate. The store refuses when ballots reference it.
func (r *CandidateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM candidates WHERE id = ?"), id)
	if err != nil {
		if referenced(err) {
			return fmt.Errorf("failed to delete candidate %d: %w: %w", id, secondary.ErrReferenced, err)
		}
		return wrap("delete candidate", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("candidate %d %w", id, secondary.ErrNotFound)
	}

	return nil
}

// CountBallots returns the number of ballots cast for a candidate.
func (r *CandidateRepository) CountBallots(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT COUNT(*) FROM ballots WHERE candidate_id = ?"), id).Scan(&count)
	if err != nil {
		return 0, wrap("count candidate ballots", err)
	}
	return count, nil
}

func scanCandidate(s scanner) (*secondary.CandidateRecord, error) {
	var (
		profile  sql.NullString
		photoURL sql.NullString
	)

	record := &secondary.CandidateRecord{}
	err := s.Scan(
		&record.ID,
		&record.ElectionID,
		&record.Name,
		&record.Position,
		&profile,
		&photoURL,
		&record.Votes,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Profile = profile.String
	record.PhotoURL = photoURL.String
	record.CreatedAt = record.CreatedAt.UTC()

	return record, nil
}

// Ensure CandidateRepository implements the interface
var _ secondary.CandidateRepository = (*CandidateRepository)(nil)
