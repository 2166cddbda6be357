package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/wire"
)

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast and inspect ballots",
}

var voteCastCmd = &cobra.Command{
	Use:   "cast [election-id] [candidate-id]",
	Short: "Cast a ballot as the acting voter",
	Long: `Cast one ballot for a candidate. Each voter may vote once per election.

Examples:
  ballot vote cast 1 2 --as u-001`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		voterID, err := requireActor()
		if err != nil {
			return err
		}
		electionID, err := parseID("election", args[0])
		if err != nil {
			return err
		}
		candidateID, err := parseID("candidate", args[1])
		if err != nil {
			return err
		}

		_, err = wire.VoteAdapter().Cast(NewContext(), primary.CastVoteRequest{
			VoterID:     voterID,
			ElectionID:  electionID,
			CandidateID: candidateID,
		})
		return err
	},
}

var voteMineCmd = &cobra.Command{
	Use:   "mine [election-id]",
	Short: "Show the acting voter's ballot in an election",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		voterID, err := requireActor()
		if err != nil {
			return err
		}
		electionID, err := parseID("election", args[0])
		if err != nil {
			return err
		}
		wire.VoteAdapter().Mine(NewContext(), electionID, voterID)
		return nil
	},
}

// VoteCmd returns the vote command
func VoteCmd() *cobra.Command {
	voteCmd.AddCommand(voteCastCmd)
	voteCmd.AddCommand(voteMineCmd)
	return voteCmd
}
