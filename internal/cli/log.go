package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/ballot/internal/ports/primary"
	"github.com/example/ballot/internal/wire"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long:  "View and prune the audit trail of election, candidate and voter changes",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entityType, _ := cmd.Flags().GetString("type")
		entityID, _ := cmd.Flags().GetString("entity")
		actorID, _ := cmd.Flags().GetString("actor")
		action, _ := cmd.Flags().GetString("action")

		if limit <= 0 {
			limit = 50
		}

		entries, err := wire.LogService().ListLogs(NewContext(), primary.LogFilters{
			EntityType: entityType,
			EntityID:   entityID,
			ActorID:    actorID,
			Action:     action,
			Limit:      limit,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch logs: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No log entries found")
			return nil
		}

		now := time.Now()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tWHEN\tACTOR\tACTION\tENTITY\tCHANGE")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s %s\t%s\n",
				e.ID,
				humanize.RelTime(e.CreatedAt, now, "ago", "from now"),
				orDash(e.ActorID),
				e.Action,
				e.EntityType, e.EntityID,
				describeChange(e),
			)
		}
		return w.Flush()
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show [log-id]",
	Short: "Show one audit entry in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("log", args[0])
		if err != nil {
			return err
		}

		e, err := wire.LogService().GetLog(NewContext(), id)
		if err != nil {
			return fmt.Errorf("failed to fetch log %d: %w", id, err)
		}

		fmt.Printf("Log %d\n", e.ID)
		fmt.Printf("  When:   %s (%s)\n", e.CreatedAt.Local().Format(time.RFC3339), humanize.Time(e.CreatedAt))
		fmt.Printf("  Actor:  %s\n", orDash(e.ActorID))
		fmt.Printf("  Action: %s\n", e.Action)
		fmt.Printf("  Entity: %s %s\n", e.EntityType, e.EntityID)
		if e.FieldName != "" {
			fmt.Printf("  Field:  %s\n", e.FieldName)
			fmt.Printf("  Old:    %s\n", orDash(e.OldValue))
			fmt.Printf("  New:    %s\n", orDash(e.NewValue))
		}
		return nil
	},
}

var logPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete audit entries older than --days",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		n, err := wire.LogService().PruneLogs(NewContext(), days)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Pruned %s log entries older than %d days\n", humanize.Comma(int64(n)), days)
		return nil
	},
}

func describeChange(e *primary.LogEntry) string {
	if e.FieldName == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s -> %s", e.FieldName, orDash(e.OldValue), orDash(e.NewValue))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	logListCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")
	logListCmd.Flags().StringP("type", "t", "", "Filter by entity type (election, candidate, voter)")
	logListCmd.Flags().StringP("entity", "e", "", "Filter by entity id")
	logListCmd.Flags().StringP("actor", "a", "", "Filter by actor")
	logListCmd.Flags().String("action", "", "Filter by action (create, update, delete)")
	logPruneCmd.Flags().Int("days", 90, "Keep entries newer than this many days")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logShowCmd)
	logCmd.AddCommand(logPruneCmd)

	return logCmd
}
