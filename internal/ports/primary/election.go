package primary

import (
	"context"
	"time"
)

// ElectionService defines the primary port for election administration.
type ElectionService interface {
	// CreateElection creates a new election in pending status.
	CreateElection(ctx context.Context, req CreateElectionRequest) (*CreateElectionResponse, error)

	// GetElection retrieves an election by ID.
	GetElection(ctx context.Context, electionID int64) (*Election, error)

	// ListElections lists elections with optional filters.
	ListElections(ctx context.Context, filters ElectionFilters) ([]*Election, error)

	// ListForVoter lists elections for a voter with a filter and voted flag.
	ListForVoter(ctx context.Context, voterID, filter string) ([]*VoterElection, error)

	// UpdateStatus moves an election to a new administrative status.
	UpdateStatus(ctx context.Context, electionID int64, status string) error

	// CanDeleteElection reports whether the election may be deleted.
	CanDeleteElection(ctx context.Context, electionID int64) (*DeleteCheck, error)

	// DeleteElection deletes an election and its candidates.
	DeleteElection(ctx context.Context, electionID int64) error
}

// CreateElectionRequest contains parameters for creating an election.
type CreateElectionRequest struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CreatedBy   string
}

// CreateElectionResponse contains the result of creating an election.
type CreateElectionResponse struct {
	ElectionID int64
	Election   *Election
}

// Election represents an election entity at the port boundary.
type Election struct {
	ID             int64
	Title          string
	Description    string
	StartDate      time.Time
	EndDate        time.Time
	Status         string
	Classification string
	Votable        bool
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// VoterElection is an election as seen by one voter.
type VoterElection struct {
	*Election
	HasVoted bool
}

// ElectionFilters contains filter options for listing elections.
// Classification filters on the derived label rather than the stored status.
type ElectionFilters struct {
	Status         string
	Classification string
	Limit          int
}

// DeleteCheck is the answer of a deletion guard.
type DeleteCheck struct {
	Allowed bool
	Reason  string
}
