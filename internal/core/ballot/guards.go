// Package ballot contains the pure admission rules for casting a ballot.
// Guards are pure functions that evaluate preconditions without side effects;
// the one-ballot-per-voter rule is left to the store's uniqueness constraint.
package ballot

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/ballot/internal/core/election"
)

// GuardResult represents the outcome of a guard evaluation.
// Err carries the sentinel outcome when the guard refuses.
type GuardResult struct {
	Allowed bool
	Reason  string
	Err     error
}

// Error converts the guard result to an error if not allowed.
// The returned error matches Err under errors.Is.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", r.Err, r.Reason)
}

// CastVoteContext provides context for vote admission guards.
type CastVoteContext struct {
	VoterID     string
	ElectionID  int64
	CandidateID int64
	Now         time.Time

	VoterKnown    bool
	VoterEligible bool

	ElectionExists bool
	Window         election.Window

	CandidateExists     bool
	CandidateElectionID int64
}

// CanCastVote evaluates whether a ballot may be attempted.
// Rules, in order, failing fast:
// - Voter, election and candidate identifiers must be present
// - Election must exist
// - Election must be votable at Now
// - Candidate must exist
// - Candidate must belong to the election
// - Voter must be known and eligible
func CanCastVote(ctx CastVoteContext) GuardResult {
	if strings.TrimSpace(ctx.VoterID) == "" {
		return refuse(ErrInvalidRequest, "voter id is required")
	}
	if ctx.ElectionID <= 0 {
		return refuse(ErrInvalidRequest, "election id must be positive")
	}
	if ctx.CandidateID <= 0 {
		return refuse(ErrInvalidRequest, "candidate id must be positive")
	}

	if !ctx.ElectionExists {
		return refuse(ErrElectionNotFound, fmt.Sprintf("election %d not found", ctx.ElectionID))
	}

	if !election.IsVotable(ctx.Window, ctx.Now) {
		return refuse(ErrElectionNotVotable, fmt.Sprintf("election %d is %s", ctx.ElectionID, election.Classify(ctx.Window, ctx.Now)))
	}

	if !ctx.CandidateExists {
		return refuse(ErrCandidateNotFound, fmt.Sprintf("candidate %d not found", ctx.CandidateID))
	}

	if ctx.CandidateElectionID != ctx.ElectionID {
		return refuse(ErrCandidateElectionMismatch, fmt.Sprintf("candidate %d is not standing in election %d", ctx.CandidateID, ctx.ElectionID))
	}

	if !ctx.VoterKnown || !ctx.VoterEligible {
		return refuse(ErrVoterNotEligible, fmt.Sprintf("voter %s may not vote", ctx.VoterID))
	}

	return GuardResult{Allowed: true}
}

func refuse(err error, reason string) GuardResult {
	return GuardResult{Allowed: false, Reason: reason, Err: err}
}
