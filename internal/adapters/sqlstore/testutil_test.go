// Package sqlstore_test contains integration tests for the SQL repositories.
//
// # Schema Protection
//
// setupTestDB opens a real store through db.Open, so tests always run against
// the migrated, authoritative schema. Do not hardcode CREATE TABLE statements
// in test files; use setupTestDB() and the seed* helpers.
package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/ballot/internal/db"
)

// testNow is the fixed clock used by seeded elections.
var testNow = time.Date(2026, 4, 14, 12, 0, 0, 0, time.UTC)

// setupTestDB creates a file-backed database with the authoritative schema.
// A file rather than :memory: lets the pool hand out several connections that
// share one database, which the concurrency tests depend on.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	testDB, err := db.Open(context.Background(), db.Options{
		Driver:       "sqlite3",
		Path:         filepath.Join(t.TempDir(), "ballot.db"),
		MaxOpenConns: 8,
		MaxIdleConns: 8,
		BusyTimeout:  10 * time.Second,
	})
	require.NoError(t, err, "failed to open test db")

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedVoter inserts a voter with the given role and returns its ID.
func seedVoter(t *testing.T, database *db.DB, id, role string) string {
	t.Helper()
	if role == "" {
		role = "voter"
	}
	_, err := database.Exec(
		"INSERT INTO voters (id, name, role, created_at) VALUES (?, ?, ?, ?)",
		id, "Voter "+id, role, testNow)
	require.NoError(t, err, "failed to seed voter")
	return id
}

// seedElection inserts an election whose window contains testNow.
func seedElection(t *testing.T, database *db.DB, title, status string) int64 {
	t.Helper()
	if title == "" {
		title = "Test Election"
	}
	if status == "" {
		status = "active"
	}
	var id int64
	err := database.QueryRow(
		`INSERT INTO elections (title, start_date, end_date, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'admin', ?, ?) RETURNING id`,
		title, testNow.Add(-time.Hour), testNow.Add(time.Hour), status, testNow, testNow,
	).Scan(&id)
	require.NoError(t, err, "failed to seed election")
	return id
}

// seedCandidate inserts a candidate with a zero counter.
func seedCandidate(t *testing.T, database *db.DB, electionID int64, name string) int64 {
	t.Helper()
	var id int64
	err := database.QueryRow(
		`INSERT INTO candidates (election_id, name, position, created_at) VALUES (?, ?, 'President', ?) RETURNING id`,
		electionID, name, testNow,
	).Scan(&id)
	require.NoError(t, err, "failed to seed candidate")
	return id
}

// countRows runs a COUNT(*) query.
func countRows(t *testing.T, database *db.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(query, args...).Scan(&n))
	return n
}

// candidateVotes reads a candidate's denormalized counter.
func candidateVotes(t *testing.T, database *db.DB, candidateID int64) int {
	t.Helper()
	return countRows(t, database, "SELECT votes FROM candidates WHERE id = ?", candidateID)
}

// assertCountersMatchBallots checks the counter invariant for every candidate.
func assertCountersMatchBallots(t *testing.T, database *db.DB) {
	t.Helper()
	n := countRows(t, database, `
		SELECT COUNT(*) FROM candidates c
		WHERE c.votes <> (SELECT COUNT(*) FROM ballots b WHERE b.candidate_id = c.id)`)
	require.Zero(t, n, "candidate counters disagree with ballot counts")
}
