package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/ballot/internal/core/ballot"
	"github.com/example/ballot/internal/models"
	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/ports/secondary"
)

// DefaultMaxAttempts is used when a non-positive attempt limit is configured.
const DefaultMaxAttempts = 3

// VotingServiceImpl implements the VotingService interface.
// It holds no locks: the ballot store's uniqueness constraint decides
// between concurrent ballots from the same voter.
type VotingServiceImpl struct {
	electionRepo  secondary.ElectionRepository
	candidateRepo secondary.CandidateRepository
	ballotRepo    secondary.BallotRepository
	voterRepo     secondary.VoterRepository
	maxAttempts   int
	now           func() time.Time
	newID         func() string
}

// NewVotingService creates a new VotingService with injected dependencies.
func NewVotingService(
	electionRepo secondary.ElectionRepository,
	candidateRepo secondary.CandidateRepository,
	ballotRepo secondary.BallotRepository,
	voterRepo secondary.VoterRepository,
	maxAttempts int,
) *VotingServiceImpl {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &VotingServiceImpl{
		electionRepo:  electionRepo,
		candidateRepo: candidateRepo,
		ballotRepo:    ballotRepo,
		voterRepo:     voterRepo,
		maxAttempts:   maxAttempts,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// CastVote records one ballot. The ballot insert and the counter increment
// happen in one store transaction; a transient store error retries that
// whole unit, every other failure is final.
func (s *VotingServiceImpl) CastVote(ctx context.Context, req primary.CastVoteRequest) (*primary.CastVoteResponse, error) {
	now := req.Now
	if now.IsZero() {
		now = s.now()
	}
	now = now.UTC()

	guardCtx, err := s.loadCastContext(ctx, req, now)
	if err != nil {
		return nil, err
	}
	if result := ballot.CanCastVote(guardCtx); !result.Allowed {
		slog.Info("ballot refused",
			"election_id", req.ElectionID,
			"candidate_id", req.CandidateID,
			"voter_id", req.VoterID,
			"code", ballot.CodeOf(result.Err),
			"reason", result.Reason)
		return nil, result.Error()
	}

	record := &secondary.BallotRecord{
		ID:          s.newID(),
		ElectionID:  req.ElectionID,
		VoterID:     req.VoterID,
		CandidateID: req.CandidateID,
		VotedAt:     now,
	}

	attempts := 0
	for {
		attempts++
		err = s.ballotRepo.Cast(ctx, record)
		if err == nil || !errors.Is(err, secondary.ErrTransient) || attempts >= s.maxAttempts || ctx.Err() != nil {
			break
		}
		slog.Warn("transient store error casting ballot, retrying",
			"election_id", req.ElectionID,
			"attempt", attempts,
			"error", err)
	}

	if err != nil {
		mapped := castError(req, err)
		slog.Info("ballot rejected",
			"election_id", req.ElectionID,
			"candidate_id", req.CandidateID,
			"voter_id", req.VoterID,
			"code", ballot.CodeOf(mapped),
			"attempts", attempts)
		return nil, mapped
	}

	slog.Info("ballot cast",
		"ballot_id", record.ID,
		"election_id", record.ElectionID,
		"candidate_id", record.CandidateID,
		"attempts", attempts)

	return &primary.CastVoteResponse{
		BallotID:    record.ID,
		ElectionID:  record.ElectionID,
		CandidateID: record.CandidateID,
		VotedAt:     record.VotedAt,
		Attempts:    attempts,
	}, nil
}

// GetMyVote returns the voter's ballot in an election, or nil.
// Store errors are logged and reported as no ballot.
func (s *VotingServiceImpl) GetMyVote(ctx context.Context, electionID int64, voterID string) *primary.MyVote {
	record, err := s.ballotRepo.GetByVoter(ctx, electionID, voterID)
	if err != nil {
		if !errors.Is(err, secondary.ErrNotFound) {
			slog.Warn("failed to read ballot", "election_id", electionID, "voter_id", voterID, "error", err)
		}
		return nil
	}

	vote := &primary.MyVote{
		BallotID:    record.ID,
		CandidateID: record.CandidateID,
		VotedAt:     record.VotedAt,
	}

	candidate, err := s.candidateRepo.GetByID(ctx, record.CandidateID)
	if err != nil {
		slog.Warn("failed to read voted candidate", "candidate_id", record.CandidateID, "error", err)
		return vote
	}
	vote.CandidateName = candidate.Name
	return vote
}

// loadCastContext reads the voter, election and candidate named by req.
// Rows that do not exist leave their flags false for the guard to refuse.
func (s *VotingServiceImpl) loadCastContext(ctx context.Context, req primary.CastVoteRequest, now time.Time) (ballot.CastVoteContext, error) {
	guardCtx := ballot.CastVoteContext{
		VoterID:     req.VoterID,
		ElectionID:  req.ElectionID,
		CandidateID: req.CandidateID,
		Now:         now,
	}

	// Malformed requests are refused by the guard before any read.
	if strings.TrimSpace(req.VoterID) == "" || req.ElectionID <= 0 || req.CandidateID <= 0 {
		return guardCtx, nil
	}

	e, err := s.electionRepo.GetByID(ctx, req.ElectionID)
	switch {
	case err == nil:
		guardCtx.ElectionExists = true
		guardCtx.Window = windowOf(e)
	case !errors.Is(err, secondary.ErrNotFound):
		return guardCtx, storageFailure("load election", err)
	}

	c, err := s.candidateRepo.GetByID(ctx, req.CandidateID)
	switch {
	case err == nil:
		guardCtx.CandidateExists = true
		guardCtx.CandidateElectionID = c.ElectionID
	case !errors.Is(err, secondary.ErrNotFound):
		return guardCtx, storageFailure("load candidate", err)
	}

	voter, err := s.voterRepo.GetByID(ctx, req.VoterID)
	switch {
	case err == nil:
		guardCtx.VoterKnown = true
		guardCtx.VoterEligible = models.Voter{Role: voter.Role}.Eligible()
	case !errors.Is(err, secondary.ErrNotFound):
		return guardCtx, storageFailure("load voter", err)
	}

	return guardCtx, nil
}

// castError maps a store error from Cast onto the ballot outcomes.
func castError(req primary.CastVoteRequest, err error) error {
	switch {
	case errors.Is(err, secondary.ErrDuplicateBallot):
		return fmt.Errorf("%w: voter %s in election %d", ballot.ErrAlreadyVoted, req.VoterID, req.ElectionID)
	case errors.Is(err, secondary.ErrNotFound):
		// The candidate or voter row vanished after the guard ran.
		return fmt.Errorf("%w: candidate %d in election %d", ballot.ErrCandidateNotFound, req.CandidateID, req.ElectionID)
	default:
		return storageFailure("cast ballot", err)
	}
}

func storageFailure(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ballot.ErrStorageFailure, op, err)
}

// Ensure VotingServiceImpl implements the interface
var _ primary.VotingService = (*VotingServiceImpl)(nil)
