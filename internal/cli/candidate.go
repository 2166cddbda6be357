package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/wire"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate",
	Short: "Manage candidates",
}

var candidateAddCmd = &cobra.Command{
	Use:   "add [election-id] [name]",
	Short: "Add a candidate to an election",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		electionID, err := parseID("election", args[0])
		if err != nil {
			return err
		}
		position, _ := cmd.Flags().GetString("position")
		profile, _ := cmd.Flags().GetString("profile")
		photo, _ := cmd.Flags().GetString("photo")

		resp, err := wire.CandidateService().AddCandidate(NewContext(), primary.AddCandidateRequest{
			ElectionID: electionID,
			Name:       args[1],
			Position:   position,
			Profile:    profile,
			PhotoURL:   photo,
		})
		if err != nil {
			return fmt.Errorf("failed to add candidate: %w", err)
		}

		fmt.Printf("✓ Added candidate %d: %s (%s) to election %d\n", resp.CandidateID, resp.Candidate.Name, resp.Candidate.Position, electionID)
		return nil
	},
}

var candidateListCmd = &cobra.Command{
	Use:   "list [election-id]",
	Short: "List an election's candidates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		electionID, err := parseID("election", args[0])
		if err != nil {
			return err
		}

		candidates, err := wire.CandidateService().ListCandidates(NewContext(), electionID)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			fmt.Println("No candidates found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPOSITION")
		fmt.Fprintln(w, "--\t----\t--------")
		for _, c := range candidates {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Position)
		}
		return w.Flush()
	},
}

var candidateDeleteCmd = &cobra.Command{
	Use:   "delete [candidate-id]",
	Short: "Delete a candidate that has no votes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("candidate", args[0])
		if err != nil {
			return err
		}
		return wire.ElectionAdapter().DeleteCandidate(NewContext(), id)
	},
}

// CandidateCmd returns the candidate command
func CandidateCmd() *cobra.Command {
	candidateAddCmd.Flags().StringP("position", "p", "", "Position the candidate stands for (required)")
	candidateAddCmd.Flags().String("profile", "", "Short candidate profile")
	candidateAddCmd.Flags().String("photo", "", "Photo URL")
	_ = candidateAddCmd.MarkFlagRequired("position")

	candidateCmd.AddCommand(candidateAddCmd)
	candidateCmd.AddCommand(candidateListCmd)
	candidateCmd.AddCommand(candidateDeleteCmd)

	return candidateCmd
}
