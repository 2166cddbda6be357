package sqlstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ballot/internal/adapters/sqlstore"
	"github.com/example/ballot/internal/ports/secondary"
)

func TestElectionRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewElectionRepository(database)
	ctx := context.Background()

	record := &secondary.ElectionRecord{
		Title:       "Board Election",
		Description: "Two seats",
		StartDate:   testNow,
		EndDate:     testNow.Add(24 * time.Hour),
		Status:      "pending",
		CreatedBy:   "admin",
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	require.NoError(t, repo.Create(ctx, record))
	require.NotZero(t, record.ID)

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Board Election", got.Title)
	assert.Equal(t, "Two seats", got.Description)
	assert.True(t, got.StartDate.Equal(testNow))
	assert.True(t, got.EndDate.Equal(testNow.Add(24*time.Hour)))
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "admin", got.CreatedBy)
}

func TestElectionRepository_GetByID_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewElectionRepository(database)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, secondary.ErrNotFound)
	assert.EqualError(t, err, "election 404 not found")
}

func TestElectionRepository_Create_RejectsInvertedWindow(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewElectionRepository(database)

	err := repo.Create(context.Background(), &secondary.ElectionRecord{
		Title:     "Backwards",
		StartDate: testNow,
		EndDate:   testNow.Add(-time.Minute),
		Status:    "pending",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	})
	assert.ErrorIs(t, err, secondary.ErrConstraint)
}

func TestElectionRepository_ListAndCount(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewElectionRepository(database)
	ctx := context.Background()

	seedElection(t, database, "One", "active")
	seedElection(t, database, "Two", "active")
	seedElection(t, database, "Three", "pending")

	all, err := repo.List(ctx, secondary.ElectionFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := repo.List(ctx, secondary.ElectionFilters{Status: "active"})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	limited, err := repo.List(ctx, secondary.ElectionFilters{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"active": 2, "pending": 1}, counts)
}

func TestElectionRepository_UpdateStatus(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewElectionRepository(database)
	ctx := context.Background()

	id := seedElection(t, database, "", "pending")
	later := testNow.Add(time.Minute)

	require.NoError(t, repo.UpdateStatus(ctx, id, "active", later))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "active", got.Status)
	assert.True(t, got.UpdatedAt.Equal(later))

	err = repo.UpdateStatus(ctx, 999, "active", later)
	assert.ErrorIs(t, err, secondary.ErrNotFound)

	err = repo.UpdateStatus(ctx, id, "archived", later)
	assert.ErrorIs(t, err, secondary.ErrConstraint)
}

func TestElectionRepository_Delete_CascadesCandidates(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewElectionRepository(database)
	ctx := context.Background()

	id := seedElection(t, database, "", "pending")
	seedCandidate(t, database, id, "A")
	seedCandidate(t, database, id, "B")

	require.NoError(t, repo.Delete(ctx, id))

	assert.Zero(t, countRows(t, database, "SELECT COUNT(*) FROM candidates WHERE election_id = ?", id))
	_, err := repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, secondary.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, id), secondary.ErrNotFound)
}

func TestElectionRepository_Delete_RejectedWhenBallotsExist(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewElectionRepository(database)
	ballots := sqlstore.NewBallotRepository(database)
	ctx := context.Background()

	id := seedElection(t, database, "", "active")
	candidateID := seedCandidate(t, database, id, "A")
	seedVoter(t, database, "u1", "")
	require.NoError(t, ballots.Cast(ctx, &secondary.BallotRecord{
		ID: uuid.NewString(), ElectionID: id, VoterID: "u1", CandidateID: candidateID, VotedAt: testNow,
	}))

	err := repo.Delete(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, secondary.ErrReferenced), "got %v", err)

	// Nothing was removed.
	assert.Equal(t, 1, countRows(t, database, "SELECT COUNT(*) FROM candidates WHERE election_id = ?", id))
	assert.Equal(t, 1, countRows(t, database, "SELECT COUNT(*) FROM ballots WHERE election_id = ?", id))

	n, err := repo.CountBallots(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
