package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/pondside/fantasy-hockey/internal/config"
	"github.com/pondside/fantasy-hockey/internal/domain/league"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
	"github.com/pondside/fantasy-hockey/internal/domain/team"
	"github.com/pondside/fantasy-hockey/internal/infrastructure/repository/memory"
	"github.com/pondside/fantasy-hockey/internal/infrastructure/repository/postgres"
	"github.com/pondside/fantasy-hockey/internal/infrastructure/statsfeed"
	"github.com/pondside/fantasy-hockey/internal/interfaces/httpapi"
	"github.com/pondside/fantasy-hockey/internal/platform/cache"
	idgen "github.com/pondside/fantasy-hockey/internal/platform/id"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
	"github.com/pondside/fantasy-hockey/internal/platform/resilience"
	"github.com/pondside/fantasy-hockey/internal/usecase"
)

type repositories struct {
	leagues    league.Repository
	teams      team.Repository
	matchups   matchup.Repository
	rosters    roster.Repository
	settings   scoring.SettingsRepository
	scoreCache scoring.ScoreCacheRepository
	stats      statline.Provider
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var repos repositories
	var err error
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		repos, err = buildPostgresRepositories(cfg, logger)
	default:
		repos, err = buildMemoryRepositories()
	}
	if err != nil {
		return nil, err
	}

	resolver := usecase.NewRosterResolver(repos.rosters, repos.teams, repos.leagues, logger)
	scoreSvc := usecase.NewScoreService(
		resolver,
		repos.stats,
		repos.settings,
		repos.scoreCache,
		repos.matchups,
		repos.leagues,
		logger,
	)

	var totals *cache.Store
	if cfg.CacheEnabled {
		totals = cache.NewStore(cfg.CacheTTL)
	}
	matchupSvc := usecase.NewMatchupService(scoreSvc, repos.matchups, repos.teams, totals, logger)
	lineupSvc := usecase.NewLineupService(repos.rosters, repos.teams, repos.leagues, logger)
	settingsSvc := usecase.NewSettingsService(repos.settings, repos.leagues, scoreSvc, logger)
	backfillSvc := usecase.NewBackfillService(scoreSvc, repos.matchups, idgen.NewRandomGenerator(), cfg.BackfillWorkers, logger)

	handler := httpapi.NewHandler(scoreSvc, matchupSvc, lineupSvc, settingsSvc, backfillSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildMemoryRepositories wires the seeded demo league so the service runs
// without a database.
func buildMemoryRepositories() (repositories, error) {
	ctx := context.Background()

	rosterRepo := memory.NewRosterRepository()
	for _, lineup := range memory.SeedLineups() {
		if err := rosterRepo.UpsertCurrentLineup(ctx, lineup); err != nil {
			return repositories{}, fmt.Errorf("seed lineup: %w", err)
		}
	}
	for _, snapshot := range memory.SeedSnapshots() {
		if err := rosterRepo.SaveSnapshot(ctx, snapshot); err != nil {
			return repositories{}, fmt.Errorf("seed snapshot: %w", err)
		}
	}

	return repositories{
		leagues:    memory.NewLeagueRepository(memory.SeedLeagues()),
		teams:      memory.NewTeamRepository(memory.SeedTeams()),
		matchups:   memory.NewMatchupRepository(memory.SeedMatchups()),
		rosters:    rosterRepo,
		settings:   memory.NewScoringSettingsRepository(memory.SeedSettings()),
		scoreCache: memory.NewScoreCacheRepository(),
		stats:      memory.NewStatLineProvider(memory.SeedStatLines(), memory.SeedCompleteDays()),
	}, nil
}

func buildPostgresRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open postgres: %w", err)
	}

	repos := repositories{
		leagues:    postgres.NewLeagueRepository(db),
		teams:      postgres.NewTeamRepository(db),
		matchups:   postgres.NewMatchupRepository(db),
		rosters:    postgres.NewRosterRepository(db),
		settings:   postgres.NewScoringSettingsRepository(db),
		scoreCache: postgres.NewScoreCacheRepository(db),
	}

	// Prefer the external feed when configured; otherwise stat lines come
	// from the locally ingested tables.
	if cfg.StatsFeedBaseURL != "" {
		repos.stats = statsfeed.NewClient(statsfeed.ClientConfig{
			BaseURL:    cfg.StatsFeedBaseURL,
			APIKey:     cfg.StatsFeedAPIKey,
			Timeout:    cfg.StatsFeedTimeout,
			MaxRetries: cfg.StatsFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatsFeedCircuitEnabled,
				FailureThreshold: cfg.StatsFeedCircuitFailureCount,
				OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
			},
		})
	} else {
		repos.stats = postgres.NewStatLineRepository(db)
	}

	return repos, nil
}
