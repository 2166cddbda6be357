package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ballot/internal/db"
	"github.com/example/ballot/internal/ports/secondary"
)

// BallotRepository implements secondary.BallotRepository.
type BallotRepository struct {
	db *db.DB
}

// NewBallotRepository creates a new ballot repository.
func NewBallotRepository(database *db.DB) *BallotRepository {
	return &BallotRepository{db: database}
}

// Cast inserts the ballot and bumps the candidate's counter in one transaction.
// The unique index on (election_id, voter_id) decides which of several
// concurrent ballots from one voter wins; there is no prior existence check.
func (r *BallotRepository) Cast(ctx context.Context, b *secondary.BallotRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin ballot transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		r.db.Rebind("INSERT INTO ballots (id, election_id, voter_id, candidate_id, voted_at) VALUES (?, ?, ?, ?, ?)"),
		b.ID, b.ElectionID, b.VoterID, b.CandidateID, b.VotedAt.UTC())
	if err != nil {
		switch classify(err) {
		case failUnique:
			return fmt.Errorf("voter %s in election %d: %w", b.VoterID, b.ElectionID, secondary.ErrDuplicateBallot)
		case failForeignKey:
			return fmt.Errorf("candidate %d in election %d %w", b.CandidateID, b.ElectionID, secondary.ErrNotFound)
		}
		return wrap("insert ballot", err)
	}

	result, err := tx.ExecContext(ctx,
		r.db.Rebind("UPDATE candidates SET votes = votes + 1 WHERE id = ? AND election_id = ?"),
		b.CandidateID, b.ElectionID)
	if err != nil {
		return wrap("increment candidate votes", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return wrap("increment candidate votes", err)
	}
	if n != 1 {
		return fmt.Errorf("candidate %d in election %d %w", b.CandidateID, b.ElectionID, secondary.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		if classify(err) == failUnique {
			return fmt.Errorf("voter %s in election %d: %w", b.VoterID, b.ElectionID, secondary.ErrDuplicateBallot)
		}
		return wrap("commit ballot", err)
	}

	return nil
}

// GetByVoter retrieves a voter's ballot in an election.
func (r *BallotRepository) GetByVoter(ctx context.Context, electionID int64, voterID string) (*secondary.BallotRecord, error) {
	record := &secondary.BallotRecord{}
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT id, election_id, voter_id, candidate_id, voted_at FROM ballots WHERE election_id = ? AND voter_id = ?"),
		electionID, voterID,
	).Scan(&record.ID, &record.ElectionID, &record.VoterID, &record.CandidateID, &record.VotedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ballot for voter %s in election %d %w", voterID, electionID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, wrap("get ballot", err)
	}

	record.VotedAt = record.VotedAt.UTC()
	return record, nil
}

// ListElectionIDsByVoter returns the elections the voter has a ballot in.
func (r *BallotRepository) ListElectionIDsByVoter(ctx context.Context, voterID string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		r.db.Rebind("SELECT election_id FROM ballots WHERE voter_id = ? ORDER BY election_id"), voterID)
	if err != nil {
		return nil, wrap("list voted elections", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan election id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list voted elections", err)
	}

	return ids, nil
}

// Count returns the number of ballots matching the given filters.
func (r *BallotRepository) Count(ctx context.Context, filters secondary.BallotFilters) (int, error) {
	query := "SELECT COUNT(*) FROM ballots WHERE 1=1"
	args := []any{}

	if filters.ElectionID != 0 {
		query += " AND election_id = ?"
		args = append(args, filters.ElectionID)
	}

	if filters.VoterID != "" {
		query += " AND voter_id = ?"
		args = append(args, filters.VoterID)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), args...).Scan(&count); err != nil {
		return 0, wrap("count ballots", err)
	}
	return count, nil
}

// Tally reads every candidate of the election with its counts.
// One statement gives one snapshot, so the ballot counts and the distinct
// voter figure always agree with each other.
func (r *BallotRepository) Tally(ctx context.Context, electionID int64) (*secondary.TallyRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT c.id, c.name, c.position, c.votes, COUNT(b.id) AS ballots,
			(SELECT COUNT(DISTINCT voter_id) FROM ballots WHERE election_id = ?) AS distinct_voters
		FROM candidates c
		LEFT JOIN ballots b ON b.candidate_id = c.id AND b.election_id = c.election_id
		WHERE c.election_id = ?
		GROUP BY c.id, c.name, c.position, c.votes
		ORDER BY ballots DESC, c.id ASC
	`), electionID, electionID)
	if err != nil {
		return nil, wrap("tally election", err)
	}
	defer rows.Close()

	tally := &secondary.TallyRecord{ElectionID: electionID}
	for rows.Next() {
		c := &secondary.CandidateTallyRecord{ElectionID: electionID}
		if err := rows.Scan(&c.CandidateID, &c.Name, &c.Position, &c.Counter, &c.Ballots, &tally.DistinctVoters); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tally.Candidates = append(tally.Candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("tally election", err)
	}

	return tally, nil
}

// ListCounterMismatches returns candidates whose counter differs from their ballots.
func (r *BallotRepository) ListCounterMismatches(ctx context.Context) ([]*secondary.CandidateTallyRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.election_id, c.id, c.name, c.position, c.votes, COUNT(b.id) AS ballots
		FROM candidates c
		LEFT JOIN ballots b ON b.candidate_id = c.id AND b.election_id = c.election_id
		GROUP BY c.election_id, c.id, c.name, c.position, c.votes
		HAVING c.votes <> COUNT(b.id)
		ORDER BY c.election_id, c.id
	`)
	if err != nil {
		return nil, wrap("verify counters", err)
	}
	defer rows.Close()

	var mismatches []*secondary.CandidateTallyRecord
	for rows.Next() {
		c := &secondary.CandidateTallyRecord{}
		if err := rows.Scan(&c.ElectionID, &c.CandidateID, &c.Name, &c.Position, &c.Counter, &c.Ballots); err != nil {
			return nil, fmt.Errorf("failed to scan counter check: %w", err)
		}
		mismatches = append(mismatches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("verify counters", err)
	}

	return mismatches, nil
}

// Ensure BallotRepository implements the interface
var _ secondary.BallotRepository = (*BallotRepository)(nil)
