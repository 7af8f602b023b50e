package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/league"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

type scoreInvalidator interface {
	InvalidateLeagueScores(ctx context.Context, leagueID string) error
}

// SettingsService edits league scoring weights. Every accepted edit bumps
// the settings version and invalidates the league's frozen scores so old
// totals cannot be served under new weights.
type SettingsService struct {
	settingsRepo scoring.SettingsRepository
	leagueRepo   league.Repository
	invalidator  scoreInvalidator
	now          func() time.Time
	logger       *logging.Logger
}

func NewSettingsService(
	settingsRepo scoring.SettingsRepository,
	leagueRepo league.Repository,
	invalidator scoreInvalidator,
	logger *logging.Logger,
) *SettingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettingsService{
		settingsRepo: settingsRepo,
		leagueRepo:   leagueRepo,
		invalidator:  invalidator,
		now:          time.Now,
		logger:       logger,
	}
}

func (s *SettingsService) GetSettings(ctx context.Context, leagueID string) (scoring.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.GetSettings")
	defer span.End()

	if leagueID == "" {
		return scoring.Settings{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	settings, found, err := s.settingsRepo.GetSettings(ctx, leagueID)
	if err != nil {
		return scoring.Settings{}, fmt.Errorf("get scoring settings league=%s: %w", leagueID, err)
	}
	if !found {
		return scoring.Settings{
			LeagueID: leagueID,
			Version:  1,
			Weights:  scoring.DefaultWeights(),
		}, nil
	}
	return settings, nil
}

// UpdateSettings stores the new weights under the next version and triggers
// the league-wide invalidation before returning.
func (s *SettingsService) UpdateSettings(ctx context.Context, leagueID string, weights scoring.Weights) (scoring.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.UpdateSettings")
	defer span.End()

	if leagueID == "" {
		return scoring.Settings{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, found, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return scoring.Settings{}, fmt.Errorf("get league for settings update: %w", err)
	} else if !found {
		return scoring.Settings{}, fmt.Errorf("%w: league %s", ErrNotFound, leagueID)
	}

	current, found, err := s.settingsRepo.GetSettings(ctx, leagueID)
	if err != nil {
		return scoring.Settings{}, fmt.Errorf("get scoring settings league=%s: %w", leagueID, err)
	}

	// The implicit defaults occupy version 1, so the first stored edit gets
	// version 2: rows frozen under the defaults then fail the version check
	// even if the invalidation sweep below does not land.
	version := 2
	if found {
		version = current.Version + 1
	}

	updated := scoring.Settings{
		LeagueID:  leagueID,
		Version:   version,
		Weights:   weights,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.settingsRepo.UpsertSettings(ctx, updated); err != nil {
		return scoring.Settings{}, fmt.Errorf("upsert scoring settings league=%s: %w", leagueID, err)
	}

	if err := s.invalidator.InvalidateLeagueScores(ctx, leagueID); err != nil {
		// The version bump already guards correctness: stale rows are
		// detected and discarded on read even if the sweep fails here.
		s.logger.WarnContext(ctx, "frozen score invalidation failed after settings update",
			"league_id", leagueID,
			"version", version,
			"error", err,
		)
	}

	s.logger.InfoContext(ctx, "scoring settings updated",
		"league_id", leagueID,
		"version", version,
	)
	return updated, nil
}
