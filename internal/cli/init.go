package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/config"
	"github.com/example/ballot/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		driver string
		path   string
		dsn    string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize ballot in the current directory",
		Long: `Write .ballot/config.yaml and create the election store with its schema.

Examples:
  ballot init
  ballot init --path ./elections.db
  ballot init --driver postgres --dsn "postgres://ballot@localhost/ballot?sslmode=disable"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			if _, err := os.Stat(config.Path(dir)); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", config.Path(dir))
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			cfg := wire.Config()
			if driver != "" {
				cfg.Database.Driver = driver
			}
			if path != "" {
				cfg.Database.Path = path
			}
			if dsn != "" {
				cfg.Database.DSN = dsn
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %s\n", config.Path(dir))

			// Opening the store applies every migration.
			_ = wire.DB()
			fmt.Println("✓ Election store initialized")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  ballot voter add admin \"Election Admin\" --role admin")
			fmt.Println(`  ballot election create "Student Council" --start 2026-05-01T09:00:00Z --end 2026-05-01T17:00:00Z`)

			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "driver", "", "store driver: sqlite3 or postgres")
	cmd.Flags().StringVar(&path, "path", "", "sqlite database file (default ~/.ballot/ballot.db)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "postgres connection string")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")

	return cmd
}
