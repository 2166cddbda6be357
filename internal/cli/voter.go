package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/wire"
)

var voterCmd = &cobra.Command{
	Use:   "voter",
	Short: "Manage the voter roll",
}

var voterAddCmd = &cobra.Command{
	Use:   "add [voter-id] [name]",
	Short: "Register a voter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")

		v, err := wire.VoterService().RegisterVoter(NewContext(), primary.RegisterVoterRequest{
			ID:    args[0],
			Name:  args[1],
			Email: email,
			Role:  role,
		})
		if err != nil {
			return fmt.Errorf("failed to register voter: %w", err)
		}

		fmt.Printf("✓ Registered %s %s (%s)\n", v.Role, v.ID, v.Name)
		return nil
	},
}

var voterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered voters",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		voters, err := wire.VoterService().ListVoters(NewContext(), role)
		if err != nil {
			return err
		}
		if len(voters) == 0 {
			fmt.Println("No voters found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tROLE\tELIGIBLE")
		fmt.Fprintln(w, "--\t----\t----\t--------")
		for _, v := range voters {
			eligible := "no"
			if v.Eligible {
				eligible = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Role, eligible)
		}
		return w.Flush()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the voter the CLI acts as",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := wire.VoterService().WhoAmI(NewContext())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s, %s)\n", v.ID, v.Name, v.Role)
		return nil
	},
}

// VoterCmd returns the voter command
func VoterCmd() *cobra.Command {
	voterAddCmd.Flags().StringP("email", "e", "", "Voter email")
	voterAddCmd.Flags().StringP("role", "r", "voter", "Role (voter or admin)")
	voterListCmd.Flags().StringP("role", "r", "", "Filter by role")

	voterCmd.AddCommand(voterAddCmd)
	voterCmd.AddCommand(voterListCmd)
	voterCmd.AddCommand(whoamiCmd)

	return voterCmd
}
