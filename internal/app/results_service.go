package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/ballot/internal/core/ballot"
	"github.com/example/ballot/internal/core/election"
	"github.com/example/ballot/internal/core/tally"
	"github.com/example/ballot/internal/models"
	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/ports/secondary"
)

// ResultsServiceImpl implements the ResultsService interface.
// Results are always computed from the ballot store; nothing is cached.
type ResultsServiceImpl struct {
	electionRepo secondary.ElectionRepository
	ballotRepo   secondary.BallotRepository
	voterRepo    secondary.VoterRepository
	now          func() time.Time
}

// NewResultsService creates a new ResultsService with injected dependencies.
func NewResultsService(
	electionRepo secondary.ElectionRepository,
	ballotRepo secondary.BallotRepository,
	voterRepo secondary.VoterRepository,
) *ResultsServiceImpl {
	return &ResultsServiceImpl{
		electionRepo: electionRepo,
		ballotRepo:   ballotRepo,
		voterRepo:    voterRepo,
		now:          time.Now,
	}
}

// ComputeResults ranks an election's candidates by ballot count.
func (s *ResultsServiceImpl) ComputeResults(ctx context.Context, electionID int64) (*primary.Results, error) {
	record, err := s.getElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return s.computeResults(ctx, record)
}

// GetReport returns results with the election's details and creator.
func (s *ResultsServiceImpl) GetReport(ctx context.Context, electionID int64) (*primary.Report, error) {
	record, err := s.getElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	results, err := s.computeResults(ctx, record)
	if err != nil {
		return nil, err
	}

	creatorName := record.CreatedBy
	if record.CreatedBy != "" {
		creator, err := s.voterRepo.GetByID(ctx, record.CreatedBy)
		if err == nil {
			creatorName = creator.Name
		} else if !errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("failed to load election creator: %w", err)
		}
	}

	ranked := make([]tally.Standing, len(results.Standings))
	for i, st := range results.Standings {
		ranked[i] = tally.Standing{Rank: st.Rank, CandidateID: st.CandidateID, Votes: st.Votes}
	}
	winners := tally.Winners(ranked)

	report := &primary.Report{
		Election:    recordToElection(record, results.ComputedAt),
		CreatorName: creatorName,
		Results:     results,
	}
	for i := range winners {
		report.Winners = append(report.Winners, results.Standings[i])
	}
	return report, nil
}

// GetDashboard returns headline counts. MyBallots is only filled when voterID is set.
func (s *ResultsServiceImpl) GetDashboard(ctx context.Context, voterID string) (*primary.Dashboard, error) {
	now := s.now().UTC()

	elections, err := s.electionRepo.List(ctx, secondary.ElectionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}

	dash := &primary.Dashboard{}
	for _, e := range elections {
		w := windowOf(e)
		switch election.Classify(w, now) {
		case models.ClassActive:
			dash.ActiveElections++
		case models.ClassUpcoming:
			dash.UpcomingElections++
		}
		if election.IsFinished(w, now) {
			dash.CompletedElections++
		}
	}

	byStatus, err := s.electionRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count elections: %w", err)
	}
	dash.CancelledElections = byStatus[models.ElectionStatusCancelled]

	if dash.TotalBallots, err = s.ballotRepo.Count(ctx, secondary.BallotFilters{}); err != nil {
		return nil, fmt.Errorf("failed to count ballots: %w", err)
	}

	voters, err := s.voterRepo.List(ctx, secondary.VoterFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	dash.TotalVoters = len(voters)

	if dash.EligibleVoters, err = s.voterRepo.CountEligible(ctx); err != nil {
		return nil, fmt.Errorf("failed to count eligible voters: %w", err)
	}

	if voterID != "" {
		if dash.MyBallots, err = s.ballotRepo.Count(ctx, secondary.BallotFilters{VoterID: voterID}); err != nil {
			return nil, fmt.Errorf("failed to count ballots for voter: %w", err)
		}
	}

	return dash, nil
}

// VerifyCounters lists every candidate whose counter disagrees with its ballots.
// Nothing is repaired; the ballot count stays authoritative.
func (s *ResultsServiceImpl) VerifyCounters(ctx context.Context) ([]*primary.CounterMismatch, error) {
	records, err := s.ballotRepo.ListCounterMismatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to verify counters: %w", err)
	}

	mismatches := make([]*primary.CounterMismatch, len(records))
	for i, r := range records {
		mismatches[i] = &primary.CounterMismatch{
			ElectionID:  r.ElectionID,
			CandidateID: r.CandidateID,
			Name:        r.Name,
			Counter:     r.Counter,
			Ballots:     r.Ballots,
		}
	}
	return mismatches, nil
}

// Helper methods

func (s *ResultsServiceImpl) getElection(ctx context.Context, electionID int64) (*secondary.ElectionRecord, error) {
	record, err := s.electionRepo.GetByID(ctx, electionID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("%w: election %d", ballot.ErrElectionNotFound, electionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load election: %w", err)
	}
	return record, nil
}

func (s *ResultsServiceImpl) computeResults(ctx context.Context, record *secondary.ElectionRecord) (*primary.Results, error) {
	snapshot, err := s.ballotRepo.Tally(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally election %d: %w", record.ID, err)
	}

	eligible, err := s.voterRepo.CountEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count eligible voters: %w", err)
	}

	counts := make([]tally.Count, len(snapshot.Candidates))
	names := make(map[int64]string, len(snapshot.Candidates))
	for i, c := range snapshot.Candidates {
		counts[i] = tally.Count{
			CandidateID: c.CandidateID,
			Name:        c.Name,
			Position:    c.Position,
			Ballots:     c.Ballots,
			Counter:     c.Counter,
		}
		names[c.CandidateID] = c.Name
	}

	outcome := tally.Rank(counts, snapshot.DistinctVoters, eligible)
	now := s.now().UTC()

	results := &primary.Results{
		ElectionID:     record.ID,
		Title:          record.Title,
		Status:         record.Status,
		Classification: election.Classify(windowOf(record), now),
		Standings:      make([]*primary.Standing, len(outcome.Standings)),
		TotalVotes:     outcome.TotalVotes,
		DistinctVoters: outcome.DistinctVoters,
		EligibleVoters: outcome.EligibleVoters,
		Turnout:        outcome.Turnout,
		ComputedAt:     now,
	}
	for i, st := range outcome.Standings {
		results.Standings[i] = &primary.Standing{
			Rank:        st.Rank,
			CandidateID: st.CandidateID,
			Name:        st.Name,
			Position:    st.Position,
			Votes:       st.Votes,
			Percentage:  st.Percentage,
		}
	}
	for _, m := range outcome.Mismatches {
		slog.Warn("candidate counter disagrees with ballots",
			"election_id", record.ID,
			"candidate_id", m.CandidateID,
			"counter", m.Counter,
			"ballots", m.Ballots)
		results.Mismatches = append(results.Mismatches, &primary.CounterMismatch{
			ElectionID:  record.ID,
			CandidateID: m.CandidateID,
			Name:        names[m.CandidateID],
			Counter:     m.Counter,
			Ballots:     m.Ballots,
		})
	}

	return results, nil
}

// Ensure ResultsServiceImpl implements the interface
var _ primary.ResultsService = (*ResultsServiceImpl)(nil)
