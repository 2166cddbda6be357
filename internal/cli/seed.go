package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/db"
	"github.com/example/ballot/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		Long:  "Populate the store with a voter roll, one election per phase and sample ballots.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.SeedFixtures(NewContext(), wire.DB(), time.Now()); err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}
			fmt.Println("✓ Fixtures loaded")
			fmt.Println("  ballot election list")
			return nil
		},
	}
}
