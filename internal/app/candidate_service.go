package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/ballot/internal/core/ballot"
	"github.com/example/ballot/internal/core/deletion"
	"github.com/example/ballot/internal/core/election"
	"github.com/example/ballot/internal/models"
	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/ports/secondary"
)

// CandidateServiceImpl implements the CandidateService interface.
type CandidateServiceImpl struct {
	candidateRepo secondary.CandidateRepository
	electionRepo  secondary.ElectionRepository
	logWriter     secondary.LogWriter
	now           func() time.Time
}

// NewCandidateService creates a new CandidateService with injected dependencies.
func NewCandidateService(
	candidateRepo secondary.CandidateRepository,
	electionRepo secondary.ElectionRepository,
	logWriter secondary.LogWriter,
) *CandidateServiceImpl {
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		electionRepo:  electionRepo,
		logWriter:     logWriter,
		now:           time.Now,
	}
}

// AddCandidate registers a candidate in an existing election.
func (s *CandidateServiceImpl) AddCandidate(ctx context.Context, req primary.AddCandidateRequest) (*primary.AddCandidateResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: candidate name is required", election.ErrInvalidCandidate)
	}
	position := strings.TrimSpace(req.Position)
	if position == "" {
		return nil, fmt.Errorf("%w: candidate position is required", election.ErrInvalidCandidate)
	}

	if _, err := s.electionRepo.GetByID(ctx, req.ElectionID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("%w: election %d", ballot.ErrElectionNotFound, req.ElectionID)
		}
		return nil, err
	}

	record := &secondary.CandidateRecord{
		ElectionID: req.ElectionID,
		Name:       name,
		Position:   position,
		Profile:    req.Profile,
		PhotoURL:   req.PhotoURL,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.candidateRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, models.EntityCandidate, strconv.FormatInt(record.ID, 10))
	}

	return &primary.AddCandidateResponse{
		CandidateID: record.ID,
		Candidate:   recordToCandidate(record),
	}, nil
}

// GetCandidate retrieves a candidate by ID.
func (s *CandidateServiceImpl) GetCandidate(ctx context.Context, candidateID int64) (*primary.Candidate, error) {
	record, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return recordToCandidate(record), nil
}

// ListCandidates lists an election's candidates.
func (s *CandidateServiceImpl) ListCandidates(ctx context.Context, electionID int64) ([]*primary.Candidate, error) {
	records, err := s.candidateRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	candidates := make([]*primary.Candidate, len(records))
	for i, r := range records {
		candidates[i] = recordToCandidate(r)
	}
	return candidates, nil
}

// CanDeleteCandidate reports whether the candidate may be deleted.
func (s *CandidateServiceImpl) CanDeleteCandidate(ctx context.Context, candidateID int64) (*primary.DeleteCheck, error) {
	result, err := s.deleteGuard(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return &primary.DeleteCheck{Allowed: result.Allowed, Reason: result.Reason}, nil
}

// DeleteCandidate deletes a candidate that has received no votes.
func (s *CandidateServiceImpl) DeleteCandidate(ctx context.Context, candidateID int64) error {
	result, err := s.deleteGuard(ctx, candidateID)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return result.Error()
	}

	if err := s.candidateRepo.Delete(ctx, candidateID); err != nil {
		if errors.Is(err, secondary.ErrReferenced) {
			return fmt.Errorf("%w: candidate %d", deletion.ErrHasBallots, candidateID)
		}
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogDelete(ctx, models.EntityCandidate, strconv.FormatInt(candidateID, 10))
	}
	return nil
}

// Helper methods

func (s *CandidateServiceImpl) deleteGuard(ctx context.Context, candidateID int64) (deletion.GuardResult, error) {
	record, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return deletion.GuardResult{}, fmt.Errorf("%w: candidate %d", ballot.ErrCandidateNotFound, candidateID)
		}
		return deletion.GuardResult{}, err
	}

	count, err := s.candidateRepo.CountBallots(ctx, candidateID)
	if err != nil {
		return deletion.GuardResult{}, fmt.Errorf("failed to count ballots: %w", err)
	}

	return deletion.CanDeleteCandidate(deletion.DeleteCandidateContext{
		CandidateID: candidateID,
		VoteCount:   record.Votes,
		BallotCount: count,
	}), nil
}

func recordToCandidate(r *secondary.CandidateRecord) *primary.Candidate {
	return &primary.Candidate{
		ID:         r.ID,
		ElectionID: r.ElectionID,
		Name:       r.Name,
		Position:   r.Position,
		Profile:    r.Profile,
		PhotoURL:   r.PhotoURL,
		Votes:      r.Votes,
		CreatedAt:  r.CreatedAt,
	}
}

// Ensure CandidateServiceImpl implements the interface
var _ primary.CandidateService = (*CandidateServiceImpl)(nil)
