// Package app assembles the service: repositories, services, the account
// verifier and the HTTP router, wired from config.
package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/gaeliza/gaeliza-api/internal/config"
	"github.com/gaeliza/gaeliza-api/internal/domain/action"
	"github.com/gaeliza/gaeliza-api/internal/domain/match"
	"github.com/gaeliza/gaeliza-api/internal/domain/player"
	"github.com/gaeliza/gaeliza-api/internal/domain/roster"
	"github.com/gaeliza/gaeliza-api/internal/domain/team"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/account"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/report"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/repository/memory"
	"github.com/gaeliza/gaeliza-api/internal/infrastructure/repository/postgres"
	"github.com/gaeliza/gaeliza-api/internal/interfaces/httpapi"
	"github.com/gaeliza/gaeliza-api/internal/platform/cache"
	idgen "github.com/gaeliza/gaeliza-api/internal/platform/id"
	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
	"github.com/gaeliza/gaeliza-api/internal/platform/resilience"
	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

type repositories struct {
	teams   team.Repository
	players player.Repository
	matches match.Repository
	rosters roster.Repository
	actions action.Repository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closeDB, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	idGen := idgen.NewUUIDGenerator()

	teamSvc := usecase.NewTeamService(repos.teams, repos.players, idGen)
	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, repos.players, repos.rosters, repos.actions, idGen)
	rosterSvc := usecase.NewRosterService(repos.matches, repos.players, repos.rosters, idGen, store)
	ledgerSvc := usecase.NewLedgerService(repos.matches, repos.rosters, repos.actions, idGen, store, logger)
	feedSvc := usecase.NewFeedService(ledgerSvc, repos.matches, repos.teams, repos.players)
	reportSvc := usecase.NewReportService(
		matchSvc,
		feedSvc,
		ledgerSvc,
		report.NewPDFRenderer(),
		logger,
		cfg.ReportFilenamePrefix,
		cfg.ReportBatchWorkers,
	)

	verifier := account.NewVerifier(account.VerifierConfig{
		BaseURL:  cfg.AccountBaseURL,
		Timeout:  cfg.AccountTimeout,
		CacheTTL: cfg.AccountCacheTTL,
		Logger:   logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(teamSvc, matchSvc, rosterSvc, ledgerSvc, feedSvc, reportSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeDB, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.UseMemoryStore() {
		logger.Info("using seeded in-memory store", "reason", "DB_URL empty")
		return repositories{
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			matches: memory.NewMatchRepository(memory.SeedMatches()),
			rosters: memory.NewRosterRepository(memory.SeedRoster()),
			actions: memory.NewActionRepository(nil),
		}, func() error { return nil }, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info("connected to postgres", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		teams:   postgres.NewTeamRepository(db),
		players: postgres.NewPlayerRepository(db),
		matches: postgres.NewMatchRepository(db),
		rosters: postgres.NewRosterRepository(db),
		actions: postgres.NewActionRepository(db),
	}, db.Close, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
