package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/db"
	"github.com/example/ballot/internal/version"
	"github.com/example/ballot/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for store validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the ballot store",
		Long: `Health check for ballot.

Validates:
- Store connectivity
- Schema version
- Candidate counters against ballot counts

Examples:
  ballot doctor              # Run full health check
  ballot doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{checkSchema(), checkCounters()}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" || r.Status == "⚠" {
					hasErrors = true
				}
			}

			if !quiet {
				fmt.Printf("ballot doctor (%s)\n\n", version.String())
				for _, r := range results {
					printCheck(r)
				}
			}

			if hasErrors {
				return fmt.Errorf("health check found issues")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Exit code only")
	return cmd
}

func checkSchema() CheckResult {
	ctx := NewContext()
	current, err := db.CurrentVersion(ctx, wire.DB())
	if err != nil {
		return CheckResult{Name: "Schema", Status: "✗", Details: err.Error()}
	}
	if latest := db.LatestVersion(); current != latest {
		return CheckResult{Name: "Schema", Status: "⚠", Details: fmt.Sprintf("at version %d, want %d", current, latest)}
	}
	return CheckResult{Name: fmt.Sprintf("Schema (%s, v%d)", wire.DB().Dialect, current), Status: "✓"}
}

func checkCounters() CheckResult {
	mismatches, err := wire.ResultsService().VerifyCounters(NewContext())
	if err != nil {
		return CheckResult{Name: "Vote counters", Status: "✗", Details: err.Error()}
	}
	if len(mismatches) > 0 {
		return CheckResult{
			Name:    "Vote counters",
			Status:  "⚠",
			Details: fmt.Sprintf("%d counter(s) disagree with ballots; run `ballot results verify`", len(mismatches)),
		}
	}
	return CheckResult{Name: "Vote counters", Status: "✓"}
}

func printCheck(r CheckResult) {
	status := r.Status
	switch r.Status {
	case "✓":
		status = color.New(color.FgGreen).Sprint(r.Status)
	case "⚠":
		status = color.New(color.FgYellow).Sprint(r.Status)
	case "✗":
		status = color.New(color.FgRed).Sprint(r.Status)
	}
	fmt.Printf("%s %s\n", status, r.Name)
	if r.Details != "" {
		fmt.Printf("    %s\n", r.Details)
	}
}
