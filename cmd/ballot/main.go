package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/cli"
	"github.com/example/ballot/internal/version"
	"github.com/example/ballot/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "ballot",
		Short:   "ballot - cast and tally election votes",
		Version: version.String(),
		Long: `ballot records one vote per voter per election and produces ranked results.
It runs against SQLite by default or PostgreSQL for shared deployments.`,
		PersistentPreRunE: cli.Bootstrap,
		SilenceUsage:      true,
	}
	cli.RegisterGlobalFlags(rootCmd)

	// Setup
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	// Entities
	rootCmd.AddCommand(cli.ElectionCmd())
	rootCmd.AddCommand(cli.CandidateCmd())
	rootCmd.AddCommand(cli.VoterCmd())

	// Voting and results
	rootCmd.AddCommand(cli.VoteCmd())
	rootCmd.AddCommand(cli.ResultsCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.DashboardCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	err := rootCmd.Execute()
	_ = wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
