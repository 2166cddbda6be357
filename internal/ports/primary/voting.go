// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI and HTTP API drive the core.
package primary

import (
	"context"
	"time"
)

// VotingService defines the primary port for casting ballots.
type VotingService interface {
	// CastVote records one ballot for the voter in the election.
	// Failures match the sentinels in internal/core/ballot under errors.Is.
	CastVote(ctx context.Context, req CastVoteRequest) (*CastVoteResponse, error)

	// GetMyVote returns the voter's ballot in an election, or nil if none.
	// Storage errors are logged and reported as nil; this is display-only.
	GetMyVote(ctx context.Context, electionID int64, voterID string) *MyVote
}

// CastVoteRequest contains parameters for casting a ballot.
// A zero Now means the current time.
type CastVoteRequest struct {
	VoterID     string
	ElectionID  int64
	CandidateID int64
	Now         time.Time
}

// CastVoteResponse contains the result of casting a ballot.
type CastVoteResponse struct {
	BallotID    string
	ElectionID  int64
	CandidateID int64
	VotedAt     time.Time
	Attempts    int
}

// MyVote describes who a voter chose.
type MyVote struct {
	BallotID      string
	CandidateID   int64
	CandidateName string
	VotedAt       time.Time
}
