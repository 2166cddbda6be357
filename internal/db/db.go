// Package db owns the election store: the pooled handle, schema and migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the connection pool with the dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Options configures how the store is opened.
type Options struct {
	Driver          string // "sqlite3" or "postgres"
	Path            string // sqlite database file, used when DSN is empty
	DSN             string // full driver DSN, overrides Path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
}

// Open opens a pooled handle, verifies connectivity and brings the schema up to date.
// The returned handle is safe for concurrent use and should live for the whole process.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	dsn, err := dataSourceName(dialect, opts)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &DB{DB: sqlDB, Dialect: dialect}
	if err := InitSchema(ctx, database); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// DefaultPath returns the default sqlite database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ballot", "ballot.db"), nil
}

// SQLiteDSN builds a DSN that sets per-connection pragmas, so every pooled
// connection enforces foreign keys, waits on locks and takes the write lock
// when a transaction begins.
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", fmt.Sprint(busyTimeout.Milliseconds()))
	q.Set("_journal_mode", "WAL")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

func dataSourceName(dialect Dialect, opts Options) (string, error) {
	if opts.DSN != "" {
		return opts.DSN, nil
	}
	if dialect == Postgres {
		return "", fmt.Errorf("postgres requires a dsn")
	}

	path := opts.Path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return SQLiteDSN(path, opts.BusyTimeout), nil
}
