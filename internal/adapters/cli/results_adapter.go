package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/ballot/internal/ports/primary"
)

// barWidth is the length of a 100% bar in the results table.
const barWidth = 20

// ResultsAdapter renders tallies, reports and dashboards.
type ResultsAdapter struct {
	service primary.ResultsService
	out     io.Writer
}

// NewResultsAdapter creates a new ResultsAdapter.
func NewResultsAdapter(service primary.ResultsService, out io.Writer) *ResultsAdapter {
	return &ResultsAdapter{service: service, out: out}
}

// Show prints the ranked results of an election.
func (a *ResultsAdapter) Show(ctx context.Context, electionID int64) (*primary.Results, error) {
	res, err := a.service.ComputeResults(ctx, electionID)
	if err != nil {
		return nil, err
	}
	a.printResults(res)
	return res, nil
}

// Report prints results with election details and the winner.
func (a *ResultsAdapter) Report(ctx context.Context, electionID int64) (*primary.Report, error) {
	report, err := a.service.GetReport(ctx, electionID)
	if err != nil {
		return nil, err
	}

	e := report.Election
	fmt.Fprintf(a.out, "\nElection Report: %s\n", e.Title)
	fmt.Fprintln(a.out, strings.Repeat("=", 17+len(e.Title)))
	if e.Description != "" {
		fmt.Fprintf(a.out, "%s\n", e.Description)
	}
	fmt.Fprintf(a.out, "Window:     %s to %s\n", e.StartDate.Local().Format("2006-01-02 15:04"), e.EndDate.Local().Format("2006-01-02 15:04"))
	if report.CreatorName != "" {
		fmt.Fprintf(a.out, "Created by: %s\n", report.CreatorName)
	}

	a.printResults(report.Results)

	switch len(report.Winners) {
	case 0:
		fmt.Fprintln(a.out, "No votes cast.")
	case 1:
		w := report.Winners[0]
		fmt.Fprintf(a.out, "Winner: %s with %s vote(s) (%s)\n",
			color.New(color.Bold).Sprint(w.Name), humanize.Comma(int64(w.Votes)), percent(w.Percentage))
	default:
		names := make([]string, len(report.Winners))
		for i, w := range report.Winners {
			names[i] = w.Name
		}
		fmt.Fprintf(a.out, "Tied for first with %s vote(s): %s\n",
			humanize.Comma(int64(report.Winners[0].Votes)), strings.Join(names, ", "))
	}
	return report, nil
}

// Dashboard prints headline counts.
func (a *ResultsAdapter) Dashboard(ctx context.Context, voterID string) (*primary.Dashboard, error) {
	dash, err := a.service.GetDashboard(ctx, voterID)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(a.out, "\nDashboard")
	fmt.Fprintf(a.out, "  Active elections:    %d\n", dash.ActiveElections)
	fmt.Fprintf(a.out, "  Upcoming elections:  %d\n", dash.UpcomingElections)
	fmt.Fprintf(a.out, "  Completed elections: %d\n", dash.CompletedElections)
	fmt.Fprintf(a.out, "  Cancelled elections: %d\n", dash.CancelledElections)
	fmt.Fprintf(a.out, "  Ballots cast:        %s\n", humanize.Comma(int64(dash.TotalBallots)))
	fmt.Fprintf(a.out, "  Voters:              %s (%s eligible)\n",
		humanize.Comma(int64(dash.TotalVoters)), humanize.Comma(int64(dash.EligibleVoters)))
	if voterID != "" {
		fmt.Fprintf(a.out, "  Your ballots:        %d\n", dash.MyBallots)
	}
	return dash, nil
}

// Verify prints every counter that disagrees with its ballots.
func (a *ResultsAdapter) Verify(ctx context.Context) ([]*primary.CounterMismatch, error) {
	mismatches, err := a.service.VerifyCounters(ctx)
	if err != nil {
		return nil, err
	}

	if len(mismatches) == 0 {
		fmt.Fprintf(a.out, "%s candidate counters match ballot counts\n", color.New(color.FgGreen).Sprint("✓"))
		return mismatches, nil
	}

	fmt.Fprintf(a.out, "%s %d candidate counter(s) disagree with ballot counts:\n",
		color.New(color.FgYellow).Sprint("!"), len(mismatches))
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ELECTION\tCANDIDATE\tNAME\tCOUNTER\tBALLOTS")
	for _, m := range mismatches {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%d\n", m.ElectionID, m.CandidateID, m.Name, m.Counter, m.Ballots)
	}
	w.Flush()
	return mismatches, nil
}

func (a *ResultsAdapter) printResults(res *primary.Results) {
	fmt.Fprintf(a.out, "\nResults: %s (%s)\n\n", res.Title, classColor(res.Classification))

	if len(res.Standings) == 0 {
		fmt.Fprintln(a.out, "No candidates.")
	} else {
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tCANDIDATE\tPOSITION\tVOTES\tSHARE\t")
		for _, st := range res.Standings {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				st.Rank, st.Name, st.Position, humanize.Comma(int64(st.Votes)), percent(st.Percentage), bar(st.Percentage))
		}
		w.Flush()
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Total votes: %s\n", humanize.Comma(int64(res.TotalVotes)))
	fmt.Fprintf(a.out, "Turnout:     %s (%s of %s eligible voters)\n",
		percent(res.Turnout), humanize.Comma(int64(res.DistinctVoters)), humanize.Comma(int64(res.EligibleVoters)))

	for _, m := range res.Mismatches {
		fmt.Fprintf(a.out, "%s counter for %s is %d but %d ballot(s) were cast\n",
			color.New(color.FgYellow).Sprint("warning:"), m.Name, m.Counter, m.Ballots)
	}
	fmt.Fprintln(a.out)
}

func bar(p float64) string {
	n := int(p/100*barWidth + 0.5)
	return strings.Repeat("█", n)
}
