package db

import (
	"context"
	"fmt"
	"log/slog"
)

// Migration represents a database migration with one script per dialect.
type Migration struct {
	Version  int
	Name     string
	SQLite   string
	Postgres string
}

func (m Migration) statements(d Dialect) string {
	if d == Postgres {
		return m.Postgres
	}
	return m.SQLite
}

// migrations is the list of all migrations in order.
var migrations = []Migration{
	{
		Version:  1,
		Name:     "create_voting_tables",
		SQLite:   sqliteCoreSchema,
		Postgres: postgresCoreSchema,
	},
	{
		Version:  2,
		Name:     "add_audit_log",
		SQLite:   sqliteAuditSchema,
		Postgres: postgresAuditSchema,
	},
	{
		Version:  3,
		Name:     "ballot_immutability_triggers",
		SQLite:   sqliteTriggers,
		Postgres: postgresTriggers,
	},
}

// LatestVersion is the schema version a fully migrated store reports.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// InitSchema creates the schema_version table and applies pending migrations.
func InitSchema(ctx context.Context, database *DB) error {
	_, err := database.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	return RunMigrations(ctx, database)
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(ctx context.Context, database *DB) (int, error) {
	var version int
	err := database.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations applies every migration newer than the recorded version.
// Each migration runs in its own transaction together with its version row.
func RunMigrations(ctx context.Context, database *DB) error {
	currentVersion, err := CurrentVersion(ctx, database)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		slog.Debug("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := database.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if _, err := tx.ExecContext(ctx, migration.statements(database.Dialect)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.ExecContext(ctx, database.Rebind("INSERT INTO schema_version (version) VALUES (?)"), migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("migration applied", "version", migration.Version, "name", migration.Name)
	}

	return nil
}
