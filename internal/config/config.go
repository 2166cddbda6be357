// Package config loads ballot settings from .ballot/config.yaml, a .env
// file and BALLOT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Dir is the per-project directory holding config.yaml.
const Dir = ".ballot"

// FileName is the config file inside Dir.
const FileName = "config.yaml"

// Config represents the ballot configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Voting   VotingConfig   `yaml:"voting"`
	Identity IdentityConfig `yaml:"identity"`
}

// DatabaseConfig selects and tunes the election store.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`         // sqlite3 or postgres
	Path            string        `yaml:"path,omitempty"` // sqlite3 file
	DSN             string        `yaml:"dsn,omitempty"`  // postgres connection string
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	BusyTimeout     time.Duration `yaml:"busy_timeout"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ServerConfig configures `ballot serve`.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// VotingConfig tunes the ballot registrar.
type VotingConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // attempts per ballot on transient store errors
}

// IdentityConfig names the voter the CLI acts as when --as is not given.
type IdentityConfig struct {
	Voter string `yaml:"voter,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          "sqlite3",
			MaxOpenConns:    8,
			MaxIdleConns:    4,
			ConnMaxLifetime: time.Hour,
			BusyTimeout:     5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:            ":3318",
			ShutdownTimeout: 10 * time.Second,
		},
		Voting: VotingConfig{
			MaxAttempts: 3,
		},
	}
}

// Path returns the config file location for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, Dir, FileName)
}

// LoadConfig reads .ballot/config.yaml and .env from dir.
// Missing files are not an error: defaults and the environment still apply.
func LoadConfig(dir string) (*Config, error) {
	return load(Path(dir), false, filepath.Join(dir, ".env"))
}

// LoadFile reads an explicit config file, which must exist, plus .env from the working directory.
func LoadFile(path string) (*Config, error) {
	return load(path, true, ".env")
}

func load(path string, required bool, envFile string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays BALLOT_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"BALLOT_DB_DRIVER":   &c.Database.Driver,
		"BALLOT_DB_PATH":     &c.Database.Path,
		"BALLOT_DB_DSN":      &c.Database.DSN,
		"BALLOT_LOG_LEVEL":   &c.Log.Level,
		"BALLOT_LOG_FORMAT":  &c.Log.Format,
		"BALLOT_SERVER_ADDR": &c.Server.Addr,
		"BALLOT_VOTER":       &c.Identity.Voter,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"BALLOT_DB_MAX_OPEN_CONNS":   &c.Database.MaxOpenConns,
		"BALLOT_DB_MAX_IDLE_CONNS":   &c.Database.MaxIdleConns,
		"BALLOT_VOTING_MAX_ATTEMPTS": &c.Voting.MaxAttempts,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"BALLOT_DB_BUSY_TIMEOUT":      &c.Database.BusyTimeout,
		"BALLOT_DB_CONN_MAX_LIFETIME": &c.Database.ConnMaxLifetime,
	}
	for key, dst := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	return nil
}

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}
	if c.Voting.MaxAttempts < 1 {
		return fmt.Errorf("voting.max_attempts must be at least 1, got %d", c.Voting.MaxAttempts)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("database connection limits must not be negative")
	}
	return nil
}

// SaveConfig writes config.yaml to dir/.ballot.
func SaveConfig(dir string, cfg *Config) error {
	ballotDir := filepath.Join(dir, Dir)
	if err := os.MkdirAll(ballotDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", Dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
