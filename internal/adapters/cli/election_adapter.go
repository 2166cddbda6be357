package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/ballot/internal/ports/primary"
)

// ElectionAdapter is a thin adapter that translates CLI operations to
// ElectionService and CandidateService calls.
type ElectionAdapter struct {
	elections  primary.ElectionService
	candidates primary.CandidateService
	out        io.Writer
	now        func() time.Time
}

// NewElectionAdapter creates a new ElectionAdapter.
func NewElectionAdapter(elections primary.ElectionService, candidates primary.CandidateService, out io.Writer) *ElectionAdapter {
	return &ElectionAdapter{
		elections:  elections,
		candidates: candidates,
		out:        out,
		now:        time.Now,
	}
}

// List prints elections matching filters.
func (a *ElectionAdapter) List(ctx context.Context, filters primary.ElectionFilters) ([]*primary.Election, error) {
	elections, err := a.elections.ListElections(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}

	if len(elections) == 0 {
		fmt.Fprintln(a.out, "No elections found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first election:")
		fmt.Fprintln(a.out, `  ballot election create "Student Council" --start 2026-05-01T09:00:00Z --end 2026-05-01T17:00:00Z`)
		return elections, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tSTATE\tSTART\tEND")
	fmt.Fprintln(w, "--\t-----\t------\t-----\t-----\t---")
	for _, e := range elections {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Title,
			e.Status,
			classColor(e.Classification),
			e.StartDate.Local().Format("2006-01-02 15:04"),
			e.EndDate.Local().Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
	return elections, nil
}

// ListForVoter prints elections as one voter sees them.
func (a *ElectionAdapter) ListForVoter(ctx context.Context, voterID, filter string) ([]*primary.VoterElection, error) {
	elections, err := a.elections.ListForVoter(ctx, voterID, filter)
	if err != nil {
		return nil, err
	}

	if len(elections) == 0 {
		fmt.Fprintln(a.out, "No elections found.")
		return elections, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATE\tVOTED")
	fmt.Fprintln(w, "--\t-----\t-----\t-----")
	for _, e := range elections {
		voted := "-"
		if e.HasVoted {
			voted = color.New(color.FgGreen).Sprint("yes")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Title, classColor(e.Classification), voted)
	}
	w.Flush()
	return elections, nil
}

// Show prints one election with its candidates.
func (a *ElectionAdapter) Show(ctx context.Context, electionID int64) (*primary.Election, error) {
	e, err := a.elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get election: %w", err)
	}

	now := a.now()
	fmt.Fprintf(a.out, "\nElection %d: %s\n", e.ID, e.Title)
	if e.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", e.Description)
	}
	fmt.Fprintf(a.out, "Status:  %s (%s)\n", e.Status, classColor(e.Classification))
	fmt.Fprintf(a.out, "Opens:   %s\n", when(e.StartDate, now))
	fmt.Fprintf(a.out, "Closes:  %s\n", when(e.EndDate, now))
	if e.CreatedBy != "" {
		fmt.Fprintf(a.out, "Created: by %s\n", e.CreatedBy)
	}

	candidates, err := a.candidates.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	fmt.Fprintln(a.out)
	if len(candidates) == 0 {
		fmt.Fprintln(a.out, "No candidates yet.")
		return e, nil
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCANDIDATE\tPOSITION")
	fmt.Fprintln(w, "--\t---------\t--------")
	for _, c := range candidates {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Position)
	}
	w.Flush()
	return e, nil
}

// Delete deletes an election after the deletion guard agrees.
func (a *ElectionAdapter) Delete(ctx context.Context, electionID int64) error {
	check, err := a.elections.CanDeleteElection(ctx, electionID)
	if err != nil {
		return err
	}
	if !check.Allowed {
		return fmt.Errorf("cannot delete: %s", check.Reason)
	}

	if err := a.elections.DeleteElection(ctx, electionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted election %d and its candidates\n", electionID)
	return nil
}

// DeleteCandidate deletes a candidate after the deletion guard agrees.
func (a *ElectionAdapter) DeleteCandidate(ctx context.Context, candidateID int64) error {
	check, err := a.candidates.CanDeleteCandidate(ctx, candidateID)
	if err != nil {
		return err
	}
	if !check.Allowed {
		return fmt.Errorf("cannot delete: %s", check.Reason)
	}

	if err := a.candidates.DeleteCandidate(ctx, candidateID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted candidate %d\n", candidateID)
	return nil
}
