// Package models holds the domain vocabulary shared by every layer.
package models

import "time"

// Election statuses as stored.
const (
	ElectionStatusPending   = "pending"
	ElectionStatusActive    = "active"
	ElectionStatusCompleted = "completed"
	ElectionStatusCancelled = "cancelled"
)

// Classifications are read-side labels derived from status and the clock.
const (
	ClassUpcoming  = "upcoming"
	ClassActive    = "active"
	ClassCompleted = "completed"
	ClassCancelled = "cancelled"
	ClassPending   = "pending"
)

// Voter roles. Only voters are eligible to cast ballots.
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// Election list filters offered to voters.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterUpcoming  = "upcoming"
	FilterCompleted = "completed"
	FilterVoted     = "voted"
	FilterNotVoted  = "not_voted"
)

// Audit log entity types.
const (
	EntityElection  = "election"
	EntityCandidate = "candidate"
	EntityVoter     = "voter"
)

// Election is the voting window and its administrative status.
type Election struct {
	ID          int64
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Candidate belongs to exactly one election for its whole life.
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

// Ballot is immutable once stored.
type Ballot struct {
	ID          string
	ElectionID  int64
	VoterID     string
	CandidateID int64
	VotedAt     time.Time
}

// Voter mirrors an identity owned by the authentication system.
type Voter struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// Eligible reports whether the voter may cast ballots.
func (v Voter) Eligible() bool {
	return v.Role == RoleVoter
}
