package primary

import (
	"context"
	"time"
)

// VoterService defines the primary port for the voter roll.
type VoterService interface {
	// RegisterVoter adds a voter to the directory.
	RegisterVoter(ctx context.Context, req RegisterVoterRequest) (*Voter, error)

	// GetVoter retrieves a voter by ID.
	GetVoter(ctx context.Context, voterID string) (*Voter, error)

	// ListVoters lists voters with an optional role filter.
	ListVoters(ctx context.Context, role string) ([]*Voter, error)

	// WhoAmI resolves the current caller's identity.
	WhoAmI(ctx context.Context) (*Voter, error)
}

// RegisterVoterRequest contains parameters for registering a voter.
type RegisterVoterRequest struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Voter represents a voter at the port boundary.
type Voter struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Eligible  bool
	CreatedAt time.Time
}
