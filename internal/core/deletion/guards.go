// Package deletion guards destructive operations that would rewrite history.
// Guards are advisory; the store's referential constraints are the backstop.
package deletion

import (
	"errors"
	"fmt"
)

// ErrHasBallots is returned when a delete is refused because ballots exist.
var ErrHasBallots = errors.New("ballots have been cast")

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrHasBallots, r.Reason)
}

// DeleteCandidateContext provides context for candidate deletion guards.
type DeleteCandidateContext struct {
	CandidateID int64
	VoteCount   int // denormalized counter
	BallotCount int // ballots referencing the candidate
}

// DeleteElectionContext provides context for election deletion guards.
type DeleteElectionContext struct {
	ElectionID  int64
	BallotCount int
}

// CanDeleteCandidate evaluates whether a candidate can be deleted.
// Rules:
// - Neither the counter nor the ballot count may be above zero
func CanDeleteCandidate(ctx DeleteCandidateContext) GuardResult {
	if ctx.VoteCount > 0 || ctx.BallotCount > 0 {
		n := max(ctx.VoteCount, ctx.BallotCount)
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("candidate %d has received %d vote(s) and cannot be deleted", ctx.CandidateID, n),
		}
	}

	return GuardResult{Allowed: true}
}

// CanDeleteElection evaluates whether an election can be deleted.
// Deleting an election also removes its candidates.
// Rules:
// - No ballot may reference the election
func CanDeleteElection(ctx DeleteElectionContext) GuardResult {
	if ctx.BallotCount > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("election %d has %d ballot(s) and cannot be deleted", ctx.ElectionID, ctx.BallotCount),
		}
	}

	return GuardResult{Allowed: true}
}
