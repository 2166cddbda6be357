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

// ElectionServiceImpl implements the ElectionService interface.
type ElectionServiceImpl struct {
	electionRepo secondary.ElectionRepository
	ballotRepo   secondary.BallotRepository
	logWriter    secondary.LogWriter
	now          func() time.Time
}

// NewElectionService creates a new ElectionService with injected dependencies.
// logWriter may be nil to skip the audit trail.
func NewElectionService(
	electionRepo secondary.ElectionRepository,
	ballotRepo secondary.BallotRepository,
	logWriter secondary.LogWriter,
) *ElectionServiceImpl {
	return &ElectionServiceImpl{
		electionRepo: electionRepo,
		ballotRepo:   ballotRepo,
		logWriter:    logWriter,
		now:          time.Now,
	}
}

// CreateElection creates a new election in pending status.
func (s *ElectionServiceImpl) CreateElection(ctx context.Context, req primary.CreateElectionRequest) (*primary.CreateElectionResponse, error) {
	guardCtx := election.CreateElectionContext{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if result := election.CanCreateElection(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	now := s.now().UTC()
	record := &secondary.ElectionRecord{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		Status:      models.ElectionStatusPending,
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.electionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create election: %w", err)
	}
	s.logCreate(ctx, record.ID)

	return &primary.CreateElectionResponse{
		ElectionID: record.ID,
		Election:   recordToElection(record, now),
	}, nil
}

// GetElection retrieves an election by ID.
func (s *ElectionServiceImpl) GetElection(ctx context.Context, electionID int64) (*primary.Election, error) {
	record, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return recordToElection(record, s.now().UTC()), nil
}

// ListElections lists elections, optionally narrowed to one classification.
func (s *ElectionServiceImpl) ListElections(ctx context.Context, filters primary.ElectionFilters) ([]*primary.Election, error) {
	records, err := s.electionRepo.List(ctx, secondary.ElectionFilters{
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}

	now := s.now().UTC()
	elections := make([]*primary.Election, 0, len(records))
	for _, r := range records {
		e := recordToElection(r, now)
		if filters.Classification != "" && e.Classification != filters.Classification {
			continue
		}
		elections = append(elections, e)
	}
	return elections, nil
}

// ListForVoter lists elections as a voter sees them.
// An empty voterID lists without ballot information, so voted filters match nothing.
func (s *ElectionServiceImpl) ListForVoter(ctx context.Context, voterID, filter string) ([]*primary.VoterElection, error) {
	if !election.ValidFilter(filter) {
		return nil, fmt.Errorf("%w: %q", election.ErrUnknownFilter, filter)
	}

	voted := make(map[int64]bool)
	if voterID != "" {
		ids, err := s.ballotRepo.ListElectionIDsByVoter(ctx, voterID)
		if err != nil {
			return nil, fmt.Errorf("failed to list voted elections: %w", err)
		}
		for _, id := range ids {
			voted[id] = true
		}
	}

	records, err := s.electionRepo.List(ctx, secondary.ElectionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}

	now := s.now().UTC()
	var result []*primary.VoterElection
	for _, r := range records {
		if !election.MatchesFilter(windowOf(r), now, voted[r.ID], filter) {
			continue
		}
		result = append(result, &primary.VoterElection{
			Election: recordToElection(r, now),
			HasVoted: voted[r.ID],
		})
	}
	return result, nil
}

// UpdateStatus moves an election to a new administrative status.
func (s *ElectionServiceImpl) UpdateStatus(ctx context.Context, electionID int64, status string) error {
	record, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return err
	}

	guardCtx := election.StatusTransitionContext{
		ElectionID: electionID,
		From:       record.Status,
		To:         status,
	}
	if result := election.CanTransition(guardCtx); !result.Allowed {
		return result.Error()
	}

	if err := s.electionRepo.UpdateStatus(ctx, electionID, status, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to update election status: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogUpdate(ctx, models.EntityElection, strconv.FormatInt(electionID, 10), "status", record.Status, status)
	}
	return nil
}

// CanDeleteElection reports whether the election may be deleted.
func (s *ElectionServiceImpl) CanDeleteElection(ctx context.Context, electionID int64) (*primary.DeleteCheck, error) {
	result, err := s.deleteGuard(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return &primary.DeleteCheck{Allowed: result.Allowed, Reason: result.Reason}, nil
}

// DeleteElection deletes an election and, in the store, its candidates.
// Elections with ballots are refused here and, as a backstop, by the store.
func (s *ElectionServiceImpl) DeleteElection(ctx context.Context, electionID int64) error {
	result, err := s.deleteGuard(ctx, electionID)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return result.Error()
	}

	if err := s.electionRepo.Delete(ctx, electionID); err != nil {
		if errors.Is(err, secondary.ErrReferenced) {
			return fmt.Errorf("%w: election %d", deletion.ErrHasBallots, electionID)
		}
		return fmt.Errorf("failed to delete election: %w", err)
	}

	if s.logWriter != nil {
		_ = s.logWriter.LogDelete(ctx, models.EntityElection, strconv.FormatInt(electionID, 10))
	}
	return nil
}

// Helper methods

func (s *ElectionServiceImpl) deleteGuard(ctx context.Context, electionID int64) (deletion.GuardResult, error) {
	if _, err := s.electionRepo.GetByID(ctx, electionID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return deletion.GuardResult{}, fmt.Errorf("%w: election %d", ballot.ErrElectionNotFound, electionID)
		}
		return deletion.GuardResult{}, err
	}

	count, err := s.electionRepo.CountBallots(ctx, electionID)
	if err != nil {
		return deletion.GuardResult{}, fmt.Errorf("failed to count ballots: %w", err)
	}

	return deletion.CanDeleteElection(deletion.DeleteElectionContext{
		ElectionID:  electionID,
		BallotCount: count,
	}), nil
}

func (s *ElectionServiceImpl) logCreate(ctx context.Context, electionID int64) {
	if s.logWriter != nil {
		_ = s.logWriter.LogCreate(ctx, models.EntityElection, strconv.FormatInt(electionID, 10))
	}
}

func recordToModel(r *secondary.ElectionRecord) *models.Election {
	return &models.Election{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      r.Status,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func windowOf(r *secondary.ElectionRecord) election.Window {
	return election.WindowOf(recordToModel(r))
}

func recordToElection(r *secondary.ElectionRecord, now time.Time) *primary.Election {
	w := windowOf(r)
	return &primary.Election{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         r.Status,
		Classification: election.Classify(w, now),
		Votable:        election.IsVotable(w, now),
		CreatedBy:      r.CreatedBy,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Ensure ElectionServiceImpl implements the interface
var _ primary.ElectionService = (*ElectionServiceImpl)(nil)
