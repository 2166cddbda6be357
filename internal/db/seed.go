package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeedFixtures populates the database with development fixtures: a voter roll,
// one election in each phase and a handful of ballots. Counters are written in
// the same transaction as the ballots they count.
func SeedFixtures(ctx context.Context, database *DB, now time.Time) error {
	now = now.UTC()

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	exec := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, database.Rebind(query), args...)
		return err
	}
	insertID := func(query string, args ...any) (int64, error) {
		var id int64
		err := tx.QueryRowContext(ctx, database.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	voters := []struct{ id, name, email, role string }{
		{"admin", "Election Officer", "officer@example.org", "admin"},
		{"u-001", "Amara Obi", "amara@example.org", "voter"},
		{"u-002", "Bram de Vries", "bram@example.org", "voter"},
		{"u-003", "Chen Wei", "chen@example.org", "voter"},
		{"u-004", "Dalia Haddad", "dalia@example.org", "voter"},
		{"u-005", "Emil Novak", "emil@example.org", "voter"},
	}
	for _, v := range voters {
		if err := exec(
			"INSERT INTO voters (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)",
			v.id, v.name, v.email, v.role, now,
		); err != nil {
			return fmt.Errorf("seed voters: %w", err)
		}
	}

	elections := []struct {
		title, description, status string
		start, end                 time.Time
		candidates                 [][2]string
	}{
		{
			title:       "Student Council President",
			description: "Annual election for council president",
			status:      "active",
			start:       now.Add(-24 * time.Hour),
			end:         now.Add(48 * time.Hour),
			candidates:  [][2]string{{"Iris Lang", "President"}, {"Jonah Park", "President"}, {"Kemi Adeyemi", "President"}},
		},
		{
			title:       "Library Committee",
			description: "Seats on the library committee",
			status:      "pending",
			start:       now.Add(72 * time.Hour),
			end:         now.Add(96 * time.Hour),
			candidates:  [][2]string{{"Lena Moreau", "Chair"}, {"Marco Ruiz", "Chair"}},
		},
		{
			title:       "Sports Captain",
			description: "Last term's sports captain",
			status:      "completed",
			start:       now.Add(-30 * 24 * time.Hour),
			end:         now.Add(-29 * 24 * time.Hour),
			candidates:  [][2]string{{"Nia Brooks", "Captain"}, {"Omar Farouk", "Captain"}},
		},
	}

	var activeCandidates, completedCandidates []int64
	var activeElection, completedElection int64
	for _, e := range elections {
		electionID, err := insertID(
			"INSERT INTO elections (title, description, start_date, end_date, status, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			e.title, e.description, e.start, e.end, e.status, "admin", now, now,
		)
		if err != nil {
			return fmt.Errorf("seed elections: %w", err)
		}

		for _, c := range e.candidates {
			candidateID, err := insertID(
				"INSERT INTO candidates (election_id, name, position, profile, created_at) VALUES (?, ?, ?, ?, ?)",
				electionID, c[0], c[1], sql.NullString{}, now,
			)
			if err != nil {
				return fmt.Errorf("seed candidates: %w", err)
			}
			switch e.status {
			case "active":
				activeElection = electionID
				activeCandidates = append(activeCandidates, candidateID)
			case "completed":
				completedElection = electionID
				completedCandidates = append(completedCandidates, candidateID)
			}
		}
	}

	ballots := []struct {
		electionID, candidateID int64
		voterID                 string
		votedAt                 time.Time
	}{
		{activeElection, activeCandidates[0], "u-001", now.Add(-2 * time.Hour)},
		{activeElection, activeCandidates[1], "u-002", now.Add(-time.Hour)},
		{activeElection, activeCandidates[0], "u-003", now.Add(-30 * time.Minute)},
		{completedElection, completedCandidates[1], "u-001", now.Add(-29*24*time.Hour - time.Hour)},
		{completedElection, completedCandidates[1], "u-004", now.Add(-29*24*time.Hour - 2*time.Hour)},
		{completedElection, completedCandidates[0], "u-005", now.Add(-29*24*time.Hour - 3*time.Hour)},
	}
	for _, b := range ballots {
		if err := exec(
			"INSERT INTO ballots (id, election_id, voter_id, candidate_id, voted_at) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), b.electionID, b.voterID, b.candidateID, b.votedAt,
		); err != nil {
			return fmt.Errorf("seed ballots: %w", err)
		}
		if err := exec(
			"UPDATE candidates SET votes = votes + 1 WHERE id = ? AND election_id = ?",
			b.candidateID, b.electionID,
		); err != nil {
			return fmt.Errorf("seed counters: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}
