// Package wire provides dependency injection for the ballot application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"sync"

	cliadapter "github.com/example/ballot/internal/adapters/cli"
	"github.com/example/ballot/internal/adapters/httpapi"
	"github.com/example/ballot/internal/adapters/identity"
	"github.com/example/ballot/internal/adapters/sqlstore"
	"github.com/example/ballot/internal/app"
	"github.com/example/ballot/internal/config"
	"github.com/example/ballot/internal/db"
	"github.com/example/ballot/internal/logging"
	"github.com/example/ballot/internal/ports/primary"
)

var (
	cfg      = config.Default()
	database *db.DB

	electionService  primary.ElectionService
	candidateService primary.CandidateService
	votingService    primary.VotingService
	resultsService   primary.ResultsService
	voterService     primary.VoterService
	logService       primary.LogService
	once             sync.Once
)

// Configure sets the configuration used to build services and installs the
// default logger. It must be called before any service accessor.
func Configure(c *config.Config) error {
	cfg = c
	return logging.Initialize(logging.Config{Level: c.Log.Level, Format: c.Log.Format})
}

// Config returns the active configuration.
func Config() *config.Config {
	return cfg
}

// DB returns the shared store handle.
func DB() *db.DB {
	once.Do(initServices)
	return database
}

// ElectionService returns the singleton ElectionService instance.
func ElectionService() primary.ElectionService {
	once.Do(initServices)
	return electionService
}

// CandidateService returns the singleton CandidateService instance.
func CandidateService() primary.CandidateService {
	once.Do(initServices)
	return candidateService
}

// VotingService returns the singleton VotingService instance.
func VotingService() primary.VotingService {
	once.Do(initServices)
	return votingService
}

// ResultsService returns the singleton ResultsService instance.
func ResultsService() primary.ResultsService {
	once.Do(initServices)
	return resultsService
}

// VoterService returns the singleton VoterService instance.
func VoterService() primary.VoterService {
	once.Do(initServices)
	return voterService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	database, err = db.Open(context.Background(), db.Options{
		Driver:          cfg.Database.Driver,
		Path:            cfg.Database.Path,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		BusyTimeout:     cfg.Database.BusyTimeout,
	})
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary ports backed by the shared pool
	electionRepo := sqlstore.NewElectionRepository(database)
	candidateRepo := sqlstore.NewCandidateRepository(database)
	ballotRepo := sqlstore.NewBallotRepository(database)
	voterRepo := sqlstore.NewVoterRepository(database)
	auditRepo := sqlstore.NewAuditLogRepository(database)
	logWriter := sqlstore.NewLogWriterAdapter(auditRepo)
	identityProvider := identity.NewProvider(voterRepo, cfg.Identity.Voter)

	// Primary ports
	electionService = app.NewElectionService(electionRepo, ballotRepo, logWriter)
	candidateService = app.NewCandidateService(candidateRepo, electionRepo, logWriter)
	votingService = app.NewVotingService(electionRepo, candidateRepo, ballotRepo, voterRepo, cfg.Voting.MaxAttempts)
	resultsService = app.NewResultsService(electionRepo, ballotRepo, voterRepo)
	voterService = app.NewVoterService(voterRepo, identityProvider, logWriter)
	logService = app.NewLogService(auditRepo)
}

// Close releases the store handle if it was opened.
func Close() error {
	if database == nil {
		return nil
	}
	return database.Close()
}

// ElectionAdapter returns a new ElectionAdapter writing to stdout.
func ElectionAdapter() *cliadapter.ElectionAdapter {
	return ElectionAdapterWithOutput(os.Stdout)
}

// ElectionAdapterWithOutput returns a new ElectionAdapter writing to the given output.
func ElectionAdapterWithOutput(out io.Writer) *cliadapter.ElectionAdapter {
	once.Do(initServices)
	return cliadapter.NewElectionAdapter(electionService, candidateService, out)
}

// ResultsAdapter returns a new ResultsAdapter writing to stdout.
func ResultsAdapter() *cliadapter.ResultsAdapter {
	once.Do(initServices)
	return cliadapter.NewResultsAdapter(resultsService, os.Stdout)
}

// VoteAdapter returns a new VoteAdapter writing to stdout.
func VoteAdapter() *cliadapter.VoteAdapter {
	once.Do(initServices)
	return cliadapter.NewVoteAdapter(votingService, os.Stdout)
}

// HTTPHandler returns the JSON API router.
func HTTPHandler() http.Handler {
	once.Do(initServices)
	return httpapi.NewRouter(httpapi.NewHandler(electionService, candidateService, votingService, resultsService))
}
