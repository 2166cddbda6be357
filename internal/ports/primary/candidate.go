package primary

import (
	"context"
	"time"
)

// CandidateService defines the primary port for candidate administration.
type CandidateService interface {
	// AddCandidate registers a candidate in an election.
	AddCandidate(ctx context.Context, req AddCandidateRequest) (*AddCandidateResponse, error)

	// GetCandidate retrieves a candidate by ID.
	GetCandidate(ctx context.Context, candidateID int64) (*Candidate, error)

	// ListCandidates lists an election's candidates.
	ListCandidates(ctx context.Context, electionID int64) ([]*Candidate, error)

	// CanDeleteCandidate reports whether the candidate may be deleted.
	CanDeleteCandidate(ctx context.Context, candidateID int64) (*DeleteCheck, error)

	// DeleteCandidate deletes a candidate without votes.
	DeleteCandidate(ctx context.Context, candidateID int64) error
}

// AddCandidateRequest contains parameters for adding a candidate.
type AddCandidateRequest struct {
	ElectionID int64
	Name       string
	Position   string
	Profile    string
	PhotoURL   string
}

// AddCandidateResponse contains the result of adding a candidate.
type AddCandidateResponse struct {
	CandidateID int64
	Candidate   *Candidate
}

// Candidate represents a candidate entity at the port boundary.
type Candidate struct {
	ID         int64
	ElectionID int64
	Name       string
	Position   string
	Profile    string
	PhotoURL   string
	Votes      int
	CreatedAt  time.Time
}
