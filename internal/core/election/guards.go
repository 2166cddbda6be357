// Package election contains the pure business logic for the election lifecycle.
// Guards are pure functions that evaluate preconditions without side effects.
package election

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/ballot/internal/models"
)

var (
	// ErrUnknownFilter is returned for an election list filter that ValidFilter rejects.
	ErrUnknownFilter = errors.New("unknown election filter")
	// ErrInvalidElection marks an election definition that cannot be stored.
	ErrInvalidElection = errors.New("invalid election")
	// ErrInvalidCandidate marks a candidate definition that cannot be stored.
	ErrInvalidCandidate = errors.New("invalid candidate")
	// ErrInvalidTransition marks a status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
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
	if r.Err == nil {
		return errors.New(r.Reason)
	}
	return fmt.Errorf("%w: %s", r.Err, r.Reason)
}

// Window is the part of an election that decides whether it accepts ballots.
type Window struct {
	Status    string
	StartDate time.Time
	EndDate   time.Time
}

// WindowOf extracts the voting window of an election.
func WindowOf(e *models.Election) Window {
	return Window{Status: e.Status, StartDate: e.StartDate, EndDate: e.EndDate}
}

// CreateElectionContext provides context for election creation guards.
type CreateElectionContext struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
}

// StatusTransitionContext provides context for status change guards.
type StatusTransitionContext struct {
	ElectionID int64
	From       string
	To         string
}

// transitions lists the allowed administrative status changes.
// Completed and cancelled are terminal.
var transitions = map[string][]string{
	models.ElectionStatusPending: {models.ElectionStatusActive, models.ElectionStatusCancelled},
	models.ElectionStatusActive:  {models.ElectionStatusCompleted, models.ElectionStatusCancelled},
}

// IsVotable reports whether the election accepts ballots at now.
// The window is inclusive at both ends.
func IsVotable(w Window, now time.Time) bool {
	if w.Status != models.ElectionStatusActive {
		return false
	}
	return !now.Before(w.StartDate) && !now.After(w.EndDate)
}

// IsFinished reports whether an election is over for reporting: completed by
// status or past its end, whatever its status.
func IsFinished(w Window, now time.Time) bool {
	return w.Status == models.ElectionStatusCompleted || now.After(w.EndDate)
}

// Classify labels an election for listing and reporting.
// Rules, first match wins:
// - cancelled status is cancelled
// - completed status or past the end is completed
// - before the start is upcoming
// - votable is active
// - anything else (a pending election inside its window) is pending
func Classify(w Window, now time.Time) string {
	switch {
	case w.Status == models.ElectionStatusCancelled:
		return models.ClassCancelled
	case w.Status == models.ElectionStatusCompleted || now.After(w.EndDate):
		return models.ClassCompleted
	case now.Before(w.StartDate):
		return models.ClassUpcoming
	case IsVotable(w, now):
		return models.ClassActive
	default:
		return models.ClassPending
	}
}

// MatchesFilter reports whether an election belongs in a voter's filtered list.
// hasVoted is whether the voter already holds a ballot in the election.
func MatchesFilter(w Window, now time.Time, hasVoted bool, filter string) bool {
	switch filter {
	case "", models.FilterAll:
		return true
	case models.FilterActive:
		return IsVotable(w, now)
	case models.FilterUpcoming:
		return (w.Status == models.ElectionStatusActive || w.Status == models.ElectionStatusPending) && now.Before(w.StartDate)
	case models.FilterCompleted:
		return IsFinished(w, now)
	case models.FilterVoted:
		return hasVoted
	case models.FilterNotVoted:
		return !hasVoted
	default:
		return false
	}
}

// ValidFilter reports whether filter names a known election list filter.
func ValidFilter(filter string) bool {
	switch filter {
	case "", models.FilterAll, models.FilterActive, models.FilterUpcoming,
		models.FilterCompleted, models.FilterVoted, models.FilterNotVoted:
		return true
	}
	return false
}

// CanCreateElection evaluates whether an election can be created.
// Rules:
// - Title must not be blank
// - End date must be strictly after start date
func CanCreateElection(ctx CreateElectionContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "election title is required",
			Err:     ErrInvalidElection,
		}
	}

	if ctx.StartDate.IsZero() || ctx.EndDate.IsZero() {
		return GuardResult{
			Allowed: false,
			Reason:  "election start and end dates are required",
			Err:     ErrInvalidElection,
		}
	}

	if !ctx.EndDate.After(ctx.StartDate) {
		return GuardResult{
			Allowed: false,
			Reason:  "election end date must be after start date",
			Err:     ErrInvalidElection,
		}
	}

	return GuardResult{Allowed: true}
}

// CanTransition evaluates whether an election may move between statuses.
// Rules:
// - pending may become active or cancelled
// - active may become completed or cancelled
// - completed and cancelled never change
func CanTransition(ctx StatusTransitionContext) GuardResult {
	for _, to := range transitions[ctx.From] {
		if to == ctx.To {
			return GuardResult{Allowed: true}
		}
	}

	if ctx.From == models.ElectionStatusCompleted || ctx.From == models.ElectionStatusCancelled {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("election %d is %s and can no longer change status", ctx.ElectionID, ctx.From),
			Err:     ErrInvalidTransition,
		}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("cannot move election %d from %s to %s", ctx.ElectionID, ctx.From, ctx.To),
		Err:     ErrInvalidTransition,
	}
}
