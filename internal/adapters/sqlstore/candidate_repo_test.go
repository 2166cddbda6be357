package sqlstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ballot/internal/adapters/sqlstore"
	"github.com/example/ballot/internal/ports/secondary"
)

func TestCandidateRepository_CreateAndList(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewCandidateRepository(database)
	ctx := context.Background()

	electionID := seedElection(t, database, "", "pending")
	other := seedElection(t, database, "Other", "pending")
	seedCandidate(t, database, other, "Elsewhere")

	first := &secondary.CandidateRecord{ElectionID: electionID, Name: "Ada", Position: "Chair", Profile: "Runs things", CreatedAt: testNow}
	second := &secondary.CandidateRecord{ElectionID: electionID, Name: "Bo", Position: "Chair", PhotoURL: "https://example.org/bo.png", CreatedAt: testNow}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Less(t, first.ID, second.ID)

	list, err := repo.ListByElection(ctx, electionID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ada", list[0].Name)
	assert.Equal(t, "Runs things", list[0].Profile)
	assert.Equal(t, "https://example.org/bo.png", list[1].PhotoURL)
	assert.Zero(t, list[1].Votes)

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, electionID, got.ElectionID)
}

func TestCandidateRepository_Create_UnknownElection(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewCandidateRepository(database)

	err := repo.Create(context.Background(), &secondary.CandidateRecord{ElectionID: 77, Name: "Ghost", Position: "None", CreatedAt: testNow})
	assert.ErrorIs(t, err, secondary.ErrNotFound)
}

func TestCandidateRepository_GetByID_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewCandidateRepository(database)

	_, err := repo.GetByID(context.Background(), 12)
	assert.ErrorIs(t, err, secondary.ErrNotFound)
}

func TestCandidateRepository_Delete(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewCandidateRepository(database)
	ctx := context.Background()

	electionID := seedElection(t, database, "", "active")
	id := seedCandidate(t, database, electionID, "Ada")

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), secondary.ErrNotFound)
}

func TestCandidateRepository_Delete_RejectedWhenBallotsExist(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlstore.NewCandidateRepository(database)
	ballots := sqlstore.NewBallotRepository(database)
	ctx := context.Background()

	electionID := seedElection(t, database, "", "active")
	id := seedCandidate(t, database, electionID, "Ada")
	seedVoter(t, database, "u1", "")
	require.NoError(t, ballots.Cast(ctx, &secondary.BallotRecord{
		ID: uuid.NewString(), ElectionID: electionID, VoterID: "u1", CandidateID: id, VotedAt: testNow,
	}))

	err := repo.Delete(ctx, id)
	assert.ErrorIs(t, err, secondary.ErrReferenced)

	n, err := repo.CountBallots(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, candidateVotes(t, database, id))
}

func TestCandidateRepository_ElectionIsImmutable(t *testing.T) {
	database := setupTestDB(t)

	first := seedElection(t, database, "First", "pending")
	second := seedElection(t, database, "Second", "pending")
	id := seedCandidate(t, database, first, "Ada")

	_, err := database.Exec("UPDATE candidates SET election_id = ? WHERE id = ?", second, id)
	assert.Error(t, err)

	// Other columns stay editable.
	_, err = database.Exec("UPDATE candidates SET profile = 'updated' WHERE id = ?", id)
	assert.NoError(t, err)
}
