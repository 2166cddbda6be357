package primary

import (
	"context"
	"time"
)

// ResultsService defines the primary port for tallies and reports.
type ResultsService interface {
	// ComputeResults ranks an election's candidates from durable state.
	ComputeResults(ctx context.Context, electionID int64) (*Results, error)

	// GetReport returns results with the election's details and creator.
	GetReport(ctx context.Context, electionID int64) (*Report, error)

	// GetDashboard returns headline counts, personalised when voterID is set.
	GetDashboard(ctx context.Context, voterID string) (*Dashboard, error)

	// VerifyCounters lists every candidate whose counter disagrees with its ballots.
	VerifyCounters(ctx context.Context) ([]*CounterMismatch, error)
}

// Results is the ranked outcome of an election.
type Results struct {
	ElectionID     int64
	Title          string
	Status         string
	Classification string
	Standings      []*Standing
	TotalVotes     int
	DistinctVoters int
	EligibleVoters int
	Turnout        float64
	Mismatches     []*CounterMismatch
	ComputedAt     time.Time
}

// Standing is one ranked candidate.
type Standing struct {
	Rank        int
	CandidateID int64
	Name        string
	Position    string
	Votes       int
	Percentage  float64
}

// CounterMismatch flags a candidate whose counter disagrees with its ballots.
type CounterMismatch struct {
	ElectionID  int64
	CandidateID int64
	Name        string
	Counter     int
	Ballots     int
}

// Report is the printable summary of an election.
type Report struct {
	Election    *Election
	CreatorName string
	Results     *Results
	Winners     []*Standing
}

// Dashboard contains headline counts.
type Dashboard struct {
	ActiveElections    int
	UpcomingElections  int
	CompletedElections int
	CancelledElections int
	TotalBallots       int
	TotalVoters        int
	EligibleVoters     int
	MyBallots          int
}
