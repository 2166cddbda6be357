package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/wire"
)

var electionCmd = &cobra.Command{
	Use:   "election",
	Short: "Manage elections",
	Long:  "Create, list, inspect and retire elections",
}

var electionCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new election",
	Long: `Create a pending election with a voting window.

Examples:
  ballot election create "Student Council" --start 2026-05-01T09:00:00Z --end 2026-05-01T17:00:00Z
  ballot election create "Budget" --start "2026-05-02 09:00" --end "2026-05-02 17:00" -d "Annual budget vote"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		startFlag, _ := cmd.Flags().GetString("start")
		endFlag, _ := cmd.Flags().GetString("end")

		start, err := parseTime("start", startFlag)
		if err != nil {
			return err
		}
		end, err := parseTime("end", endFlag)
		if err != nil {
			return err
		}

		resp, err := wire.ElectionService().CreateElection(NewContext(), primary.CreateElectionRequest{
			Title:       args[0],
			Description: description,
			StartDate:   start,
			EndDate:     end,
			CreatedBy:   GetActorID(),
		})
		if err != nil {
			return fmt.Errorf("failed to create election: %w", err)
		}

		fmt.Printf("✓ Created election %d: %s\n", resp.ElectionID, resp.Election.Title)
		fmt.Printf("  Status is %s; open it with: ballot election status %d active\n", resp.Election.Status, resp.ElectionID)
		return nil
	},
}

var electionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List elections",
	Long: `List elections. With --filter the list is shown from the acting voter's point of view.

Filters: all, active, upcoming, completed, voted, not_voted`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		filter, _ := cmd.Flags().GetString("filter")
		limit, _ := cmd.Flags().GetInt("limit")

		if filter != "" {
			_, err := wire.ElectionAdapter().ListForVoter(NewContext(), GetActorID(), filter)
			return err
		}
		_, err := wire.ElectionAdapter().List(NewContext(), primary.ElectionFilters{Status: status, Limit: limit})
		return err
	},
}

var electionShowCmd = &cobra.Command{
	Use:   "show [election-id]",
	Short: "Show election details and candidates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("election", args[0])
		if err != nil {
			return err
		}
		_, err = wire.ElectionAdapter().Show(NewContext(), id)
		return err
	},
}

var electionStatusCmd = &cobra.Command{
	Use:   "status [election-id] [pending|active|completed|cancelled]",
	Short: "Change an election's administrative status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("election", args[0])
		if err != nil {
			return err
		}
		if err := wire.ElectionService().UpdateStatus(NewContext(), id, args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Election %d is now %s\n", id, args[1])
		return nil
	},
}

var electionDeleteCmd = &cobra.Command{
	Use:   "delete [election-id]",
	Short: "Delete an election that has no ballots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("election", args[0])
		if err != nil {
			return err
		}
		return wire.ElectionAdapter().Delete(NewContext(), id)
	},
}

// ElectionCmd returns the election command
func ElectionCmd() *cobra.Command {
	electionCreateCmd.Flags().StringP("description", "d", "", "Election description")
	electionCreateCmd.Flags().String("start", "", "Voting opens (RFC 3339 or \"YYYY-MM-DD HH:MM\")")
	electionCreateCmd.Flags().String("end", "", "Voting closes (RFC 3339 or \"YYYY-MM-DD HH:MM\")")
	electionListCmd.Flags().StringP("status", "s", "", "Filter by status (pending, active, completed, cancelled)")
	electionListCmd.Flags().StringP("filter", "f", "", "Voter view filter (all, active, upcoming, completed, voted, not_voted)")
	electionListCmd.Flags().IntP("limit", "n", 0, "Maximum elections to show")

	electionCmd.AddCommand(electionCreateCmd)
	electionCmd.AddCommand(electionListCmd)
	electionCmd.AddCommand(electionShowCmd)
	electionCmd.AddCommand(electionStatusCmd)
	electionCmd.AddCommand(electionDeleteCmd)

	return electionCmd
}
