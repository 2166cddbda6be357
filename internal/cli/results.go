package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/wire"
)

var resultsCmd = &cobra.Command{
	Use:   "results [election-id]",
	Short: "Show ranked results for an election",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("election", args[0])
		if err != nil {
			return err
		}
		_, err = wire.ResultsAdapter().Show(NewContext(), id)
		return err
	},
}

var resultsVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare every candidate counter with its ballot count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.ResultsAdapter().Verify(NewContext())
		return err
	},
}

// ResultsCmd returns the results command
func ResultsCmd() *cobra.Command {
	resultsCmd.AddCommand(resultsVerifyCmd)
	return resultsCmd
}

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [election-id]",
		Short: "Print an election report with its winner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("election", args[0])
			if err != nil {
				return err
			}
			_, err = wire.ResultsAdapter().Report(NewContext(), id)
			return err
		},
	}
}

// DashboardCmd returns the dashboard command
func DashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ResultsAdapter().Dashboard(NewContext(), GetActorID())
			return err
		},
	}
}
