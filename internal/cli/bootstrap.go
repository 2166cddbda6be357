// Package cli provides CLI commands for the ballot application.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/config"
	"github.com/example/ballot/internal/ctxutil"
	"github.com/example/ballot/internal/wire"
)

// globalActorID stores the voter id given with --as for the current invocation.
var globalActorID string

var configPath string

// RegisterGlobalFlags adds --config and --as to the root command.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./.ballot/config.yaml)")
	root.PersistentFlags().StringVar(&globalActorID, "as", "", "voter id to act as (default: identity.voter from config)")
}

// Bootstrap loads configuration and installs logging before any command runs.
func Bootstrap(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		dir, werr := os.Getwd()
		if werr != nil {
			return fmt.Errorf("failed to get working directory: %w", werr)
		}
		cfg, err = config.LoadConfig(dir)
	}
	if err != nil {
		return err
	}

	if globalActorID == "" {
		globalActorID = cfg.Identity.Voter
	}
	return wire.Configure(cfg)
}

// GetActorID returns the voter id the CLI acts as, or "" when none is set.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}

// requireActor returns the acting voter id or an error naming how to set one.
func requireActor() (string, error) {
	if globalActorID == "" {
		return "", fmt.Errorf("no voter identity: pass --as <voter-id> or set BALLOT_VOTER")
	}
	return globalActorID, nil
}
