// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// Store errors. Adapters wrap driver errors so they match these under errors.Is.
var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateBallot means the voter already holds a ballot in the election.
	ErrDuplicateBallot = errors.New("duplicate ballot")

	// ErrReferenced means ballots still reference the row being deleted.
	ErrReferenced = errors.New("referenced by ballots")

	// ErrConstraint means some other store constraint rejected the write.
	ErrConstraint = errors.New("constraint violation")

	// ErrTransient means the store was busy or unreachable; the whole unit may be retried.
	ErrTransient = errors.New("transient storage error")
)

// ElectionRepository defines the secondary port for election persistence.
type ElectionRepository interface {
	// Create persists a new election and sets its store-assigned ID.
	Create(ctx context.Context, election *ElectionRecord) error

	// GetByID retrieves an election by its ID.
	GetByID(ctx context.Context, id int64) (*ElectionRecord, error)

	// List retrieves elections matching the given filters.
	List(ctx context.Context, filters ElectionFilters) ([]*ElectionRecord, error)

	// UpdateStatus sets the administrative status.
	UpdateStatus(ctx context.Context, id int64, status string, updatedAt time.Time) error

	// Delete removes an election and, by cascade, its candidates.
	// Returns ErrReferenced if any ballot references it.
	Delete(ctx context.Context, id int64) error

	// CountBallots returns the number of ballots cast in an election.
	CountBallots(ctx context.Context, id int64) (int, error)

	// CountByStatus returns the number of elections with each status.
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// ElectionRecord represents an election as stored in persistence.
type ElectionRecord struct {
	ID          int64
	Title       string
	Description string // Empty string means null
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	CreatedBy   string // Empty string means null
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ElectionFilters contains filter options for querying elections.
type ElectionFilters struct {
	Status string
	Limit  int
}

// CandidateRepository defines the secondary port for candidate persistence.
type CandidateRepository interface {
	// Create persists a new candidate and sets its store-assigned ID.
	Create(ctx context.Context, candidate *CandidateRecord) error

	// GetByID retrieves a candidate by its ID.
	GetByID(ctx context.Context, id int64) (*CandidateRecord, error)

	// ListByElection retrieves an election's candidates in ID order.
	ListByElection(ctx context.Context, electionID int64) ([]*CandidateRecord, error)

	// Delete removes a candidate. Returns ErrReferenced if any ballot references it.
	Delete(ctx context.Context, id int64) error

	// CountBallots returns the number of ballots cast for a candidate.
	CountBallots(ctx context.Context, id int64) (int, error)
}

// CandidateRecord represents a candidate as stored in persistence.
type CandidateRecord struct {
	ID         int64
	ElectionID int64
	Name       string
	Position   string
	Profile    string // Empty string means null
	PhotoURL   string // Empty string means null
	Votes      int
	CreatedAt  time.Time
}

// BallotRepository defines the secondary port for ballot persistence.
// Ballots are immutable: there is no Update or Delete.
type BallotRepository interface {
	// Cast inserts the ballot and increments the candidate's counter as one
	// atomic unit. Returns ErrDuplicateBallot if the voter already voted in the
	// election, ErrNotFound if the candidate row is not in that election, and
	// ErrTransient if the store was busy. Nothing is written on any error.
	Cast(ctx context.Context, ballot *BallotRecord) error

	// GetByVoter retrieves a voter's ballot in an election.
	GetByVoter(ctx context.Context, electionID int64, voterID string) (*BallotRecord, error)

	// ListElectionIDsByVoter returns the elections the voter has a ballot in.
	ListElectionIDsByVoter(ctx context.Context, voterID string) ([]int64, error)

	// Count returns the number of ballots matching the given filters.
	Count(ctx context.Context, filters BallotFilters) (int, error)

	// Tally reads every candidate of an election with its ballot count and
	// counter, plus the distinct voters in the election, in one statement.
	Tally(ctx context.Context, electionID int64) (*TallyRecord, error)

	// ListCounterMismatches returns candidates whose counter differs from
	// their ballot count, across all elections.
	ListCounterMismatches(ctx context.Context) ([]*CandidateTallyRecord, error)
}

// BallotRecord represents a ballot as stored in persistence.
type BallotRecord struct {
	ID          string
	ElectionID  int64
	VoterID     string
	CandidateID int64
	VotedAt     time.Time
}

// BallotFilters contains filter options for counting ballots.
type BallotFilters struct {
	ElectionID int64
	VoterID    string
}

// TallyRecord is a consistent read of an election's counts.
type TallyRecord struct {
	ElectionID     int64
	Candidates     []*CandidateTallyRecord
	DistinctVoters int
}

// CandidateTallyRecord is one candidate's counts.
type CandidateTallyRecord struct {
	ElectionID  int64
	CandidateID int64
	Name        string
	Position    string
	Counter     int
	Ballots     int
}

// VoterRepository defines the secondary port for the voter directory.
type VoterRepository interface {
	// Create persists a new voter.
	Create(ctx context.Context, voter *VoterRecord) error

	// GetByID retrieves a voter by ID.
	GetByID(ctx context.Context, id string) (*VoterRecord, error)

	// List retrieves voters matching the given filters.
	List(ctx context.Context, filters VoterFilters) ([]*VoterRecord, error)

	// CountEligible returns the number of voters allowed to cast ballots.
	CountEligible(ctx context.Context) (int, error)
}

// VoterRecord represents a voter as stored in persistence.
type VoterRecord struct {
	ID        string
	Name      string
	Email     string // Empty string means null
	Role      string
	CreatedAt time.Time
}

// VoterFilters contains filter options for querying voters.
type VoterFilters struct {
	Role  string
	Limit int
}

// VoterIdentityProvider defines the secondary port for resolving the current voter.
// This abstracts how the caller's identity was established (flag, env, config).
type VoterIdentityProvider interface {
	// GetCurrentIdentity returns the identity of the current voter.
	GetCurrentIdentity(ctx context.Context) (*VoterIdentity, error)
}

// VoterIdentity is a resolved, authenticated voter.
type VoterIdentity struct {
	ID       string
	Name     string
	Role     string
	Eligible bool
}

// AuditLogRepository defines the secondary port for audit trail persistence.
// Entries are immutable; old entries can be pruned.
type AuditLogRepository interface {
	// Create persists a new audit entry and sets its ID.
	Create(ctx context.Context, entry *AuditLogRecord) error

	// GetByID retrieves an audit entry by its ID.
	GetByID(ctx context.Context, id int64) (*AuditLogRecord, error)

	// List retrieves audit entries matching the given filters, newest first.
	List(ctx context.Context, filters AuditLogFilters) ([]*AuditLogRecord, error)

	// PruneOlderThan deletes entries created before cutoff and returns how many.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// AuditLogRecord represents an audit entry as stored in persistence.
type AuditLogRecord struct {
	ID         int64
	ActorID    string // Empty string means null
	EntityType string
	EntityID   string
	Action     string // 'create', 'update', 'delete'
	FieldName  string // Empty string means null - for updates only
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
	CreatedAt  time.Time
}

// AuditLogFilters contains filter options for querying audit entries.
type AuditLogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}
