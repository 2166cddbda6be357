package cli

import (
	"context"
	"errors"

	"github.com/example/ballot/internal/ports/primary"
)

// mockResultsService implements primary.ResultsService for testing.
type mockResultsService struct {
	computeFn   func(ctx context.Context, electionID int64) (*primary.Results, error)
	reportFn    func(ctx context.Context, electionID int64) (*primary.Report, error)
	dashboardFn func(ctx context.Context, voterID string) (*primary.Dashboard, error)
	verifyFn    func(ctx context.Context) ([]*primary.CounterMismatch, error)
}

func (m *mockResultsService) ComputeResults(ctx context.Context, electionID int64) (*primary.Results, error) {
	if m.computeFn != nil {
		return m.computeFn(ctx, electionID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockResultsService) GetReport(ctx context.Context, electionID int64) (*primary.Report, error) {
	if m.reportFn != nil {
		return m.reportFn(ctx, electionID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockResultsService) GetDashboard(ctx context.Context, voterID string) (*primary.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, voterID)
	}
	return &primary.Dashboard{}, nil
}

func (m *mockResultsService) VerifyCounters(ctx context.Context) ([]*primary.CounterMismatch, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx)
	}
	return nil, nil
}

// mockVotingService implements primary.VotingService for testing.
type mockVotingService struct {
	castFn   func(ctx context.Context, req primary.CastVoteRequest) (*primary.CastVoteResponse, error)
	myVoteFn func(ctx context.Context, electionID int64, voterID string) *primary.MyVote
}

func (m *mockVotingService) CastVote(ctx context.Context, req primary.CastVoteRequest) (*primary.CastVoteResponse, error) {
	if m.castFn != nil {
		return m.castFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockVotingService) GetMyVote(ctx context.Context, electionID int64, voterID string) *primary.MyVote {
	if m.myVoteFn != nil {
		return m.myVoteFn(ctx, electionID, voterID)
	}
	return nil
}

// mockElectionService implements primary.ElectionService for testing.
type mockElectionService struct {
	primary.ElectionService
	getFn       func(ctx context.Context, id int64) (*primary.Election, error)
	listFn      func(ctx context.Context, filters primary.ElectionFilters) ([]*primary.Election, error)
	canDeleteFn func(ctx context.Context, id int64) (*primary.DeleteCheck, error)
	deleted     []int64
}

func (m *mockElectionService) GetElection(ctx context.Context, id int64) (*primary.Election, error) {
	return m.getFn(ctx, id)
}

func (m *mockElectionService) ListElections(ctx context.Context, filters primary.ElectionFilters) ([]*primary.Election, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockElectionService) CanDeleteElection(ctx context.Context, id int64) (*primary.DeleteCheck, error) {
	return m.canDeleteFn(ctx, id)
}

func (m *mockElectionService) DeleteElection(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// mockCandidateService implements primary.CandidateService for testing.
type mockCandidateService struct {
	primary.CandidateService
	candidates []*primary.Candidate
}

func (m *mockCandidateService) ListCandidates(ctx context.Context, electionID int64) ([]*primary.Candidate, error) {
	return m.candidates, nil
}
