package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/league"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
	"github.com/pondside/fantasy-hockey/internal/platform/resilience"
)

// DailyScore is one team's fantasy point total for one calendar day.
type DailyScore struct {
	MatchupID string
	TeamID    string
	Date      gameday.Date
	Score     float64
	Breakdown []scoring.PlayerContribution
	Source    RosterSource
	IsFinal   bool
	FromCache bool
}

// ScoreService is the single scoring implementation every caller shares: the
// HTTP surface, the matchup reconciler, and the backfill job all go through
// it, so there is no second code path to drift from this one.
type ScoreService struct {
	resolver     *RosterResolver
	statProvider statline.Provider
	settingsRepo scoring.SettingsRepository
	cacheRepo    scoring.ScoreCacheRepository
	matchupRepo  matchup.Repository
	leagueRepo   league.Repository
	flight       resilience.SingleFlight
	now          func() time.Time
	logger       *logging.Logger
}

func NewScoreService(
	resolver *RosterResolver,
	statProvider statline.Provider,
	settingsRepo scoring.SettingsRepository,
	cacheRepo scoring.ScoreCacheRepository,
	matchupRepo matchup.Repository,
	leagueRepo league.Repository,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{
		resolver:     resolver,
		statProvider: statProvider,
		settingsRepo: settingsRepo,
		cacheRepo:    cacheRepo,
		matchupRepo:  matchupRepo,
		leagueRepo:   leagueRepo,
		now:          time.Now,
		logger:       logger,
	}
}

// ComputeDailyScore runs one full aggregation pass for (team, date): resolve
// the roster, fetch each active player's stat line, and apply the league's
// weights. It never reads or writes the frozen cache.
func (s *ScoreService) ComputeDailyScore(ctx context.Context, leagueID, teamID string, date gameday.Date) (DailyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ComputeDailyScore")
	defer span.End()

	settings, err := s.leagueSettings(ctx, leagueID)
	if err != nil {
		return DailyScore{}, err
	}

	resolution, err := s.resolver.Resolve(ctx, teamID, date)
	if err != nil {
		return DailyScore{}, err
	}

	breakdown := make([]scoring.PlayerContribution, 0, len(resolution.Active))
	total := 0.0
	for _, assignment := range resolution.Active {
		line, hasStats := s.fetchStatLine(ctx, assignment.PlayerID, date)
		points := scoring.PlayerPoints(assignment.Position, line, settings.Weights)
		breakdown = append(breakdown, scoring.PlayerContribution{
			PlayerID: assignment.PlayerID,
			Position: roster.NormalizePosition(assignment.Position),
			Goalie:   roster.IsGoalie(assignment.Position),
			Points:   points,
			HasStats: hasStats,
		})
		total += points
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].PlayerID < breakdown[j].PlayerID
	})

	return DailyScore{
		TeamID:    teamID,
		Date:      date,
		Score:     scoring.Round(total),
		Breakdown: breakdown,
		Source:    resolution.Source,
		IsFinal:   s.isFinal(ctx, leagueID, date, resolution.Source),
	}, nil
}

// GetOrCompute serves the (matchup, team, date) score with the frozen-cache
// discipline: an immutable row computed under the current settings version is
// returned verbatim; a final past day is computed at most once and persisted;
// everything else is recomputed on every call.
func (s *ScoreService) GetOrCompute(ctx context.Context, matchupID, teamID string, date gameday.Date) (DailyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.GetOrCompute")
	defer span.End()

	m, found, err := s.matchupRepo.GetByID(ctx, matchupID)
	if err != nil {
		return DailyScore{}, fmt.Errorf("get matchup for score: %w", err)
	}
	if !found {
		return DailyScore{}, fmt.Errorf("%w: matchup %s", ErrNotFound, matchupID)
	}
	if !m.HasTeam(teamID) {
		return DailyScore{}, fmt.Errorf("%w: team %s is not part of matchup %s", ErrInvalidInput, teamID, matchupID)
	}
	if date.Before(m.StartDate) || date.After(m.EndDate) {
		return DailyScore{}, fmt.Errorf("%w: date %s is outside matchup range", ErrInvalidInput, date)
	}

	settings, err := s.leagueSettings(ctx, m.LeagueID)
	if err != nil {
		return DailyScore{}, err
	}

	if out, served, err := s.readCached(ctx, matchupID, teamID, date, settings.Version); err != nil {
		return DailyScore{}, err
	} else if served {
		return out, nil
	}

	key := scoreKey(matchupID, teamID, date)
	value, err, _ := s.flight.Do(key, func() (any, error) {
		// A concurrent flight may have materialized the row already.
		if out, served, err := s.readCached(ctx, matchupID, teamID, date, settings.Version); err != nil {
			return DailyScore{}, err
		} else if served {
			return out, nil
		}

		out, err := s.ComputeDailyScore(ctx, m.LeagueID, teamID, date)
		if err != nil {
			return DailyScore{}, err
		}
		out.MatchupID = matchupID

		if out.IsFinal {
			row := scoring.CachedDailyScore{
				MatchupID:       matchupID,
				TeamID:          teamID,
				LeagueID:        m.LeagueID,
				Date:            date,
				Score:           out.Score,
				Breakdown:       out.Breakdown,
				RosterSource:    string(out.Source),
				SettingsVersion: settings.Version,
				Immutable:       true,
				ComputedAt:      s.now().UTC(),
			}
			if err := s.cacheRepo.PutImmutable(ctx, row); err != nil {
				// The score itself is still good; freezing it can retry on
				// the next read.
				s.logger.WarnContext(ctx, "persist frozen score failed",
					"matchup_id", matchupID,
					"team_id", teamID,
					"date", date.String(),
					"error", err,
				)
			}
		}

		return out, nil
	})
	if err != nil {
		return DailyScore{}, err
	}

	out, ok := value.(DailyScore)
	if !ok {
		return DailyScore{}, fmt.Errorf("unexpected score flight value type %T", value)
	}
	return out, nil
}

// InvalidateLeagueScores discards every frozen score for the league. Called
// by the scoring-settings editor whenever weights change; rows are
// recomputed lazily under the new settings on next read.
func (s *ScoreService) InvalidateLeagueScores(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.InvalidateLeagueScores")
	defer span.End()

	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	deleted, err := s.cacheRepo.DeleteByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("invalidate league scores league=%s: %w", leagueID, err)
	}

	s.logger.InfoContext(ctx, "frozen scores invalidated",
		"league_id", leagueID,
		"deleted", deleted,
	)
	return nil
}

// readCached serves an immutable row only when its settings version is
// current. A stale row is deleted, never served.
func (s *ScoreService) readCached(ctx context.Context, matchupID, teamID string, date gameday.Date, settingsVersion int) (DailyScore, bool, error) {
	row, found, err := s.cacheRepo.GetCachedScore(ctx, matchupID, teamID, date)
	if err != nil {
		return DailyScore{}, false, fmt.Errorf("get cached score: %w", err)
	}
	if !found {
		return DailyScore{}, false, nil
	}

	if row.SettingsVersion != settingsVersion {
		s.logger.WarnContext(ctx, "cached score computed under stale weights, discarding",
			"matchup_id", matchupID,
			"team_id", teamID,
			"date", date.String(),
			"cached_version", row.SettingsVersion,
			"current_version", settingsVersion,
		)
		if err := s.cacheRepo.DeleteCachedScore(ctx, matchupID, teamID, date); err != nil {
			return DailyScore{}, false, fmt.Errorf("delete stale cached score: %w", err)
		}
		return DailyScore{}, false, nil
	}

	return DailyScore{
		MatchupID: matchupID,
		TeamID:    teamID,
		Date:      date,
		Score:     row.Score,
		Breakdown: row.Breakdown,
		Source:    RosterSource(row.RosterSource),
		IsFinal:   true,
		FromCache: true,
	}, true, nil
}

func (s *ScoreService) leagueSettings(ctx context.Context, leagueID string) (scoring.Settings, error) {
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

// fetchStatLine treats both a missing line and a provider failure as the
// all-zero line: a single player must never abort a day's score.
func (s *ScoreService) fetchStatLine(ctx context.Context, playerID string, date gameday.Date) (statline.StatLine, bool) {
	line, found, err := s.statProvider.GetDailyStatLine(ctx, playerID, date)
	if err != nil {
		s.logger.WarnContext(ctx, "stat line fetch failed, scoring player as zero",
			"player_id", playerID,
			"date", date.String(),
			"error", err,
		)
		return statline.Zero(playerID, date), false
	}
	if !found {
		return statline.Zero(playerID, date), false
	}
	return line, true
}

// isFinal is true only for a past day whose games the provider confirms
// complete. Provider failures degrade to "not final" so the day keeps being
// scored live instead of freezing a possibly-partial total.
func (s *ScoreService) isFinal(ctx context.Context, leagueID string, date gameday.Date, source RosterSource) bool {
	if source == SourceLive {
		return false
	}

	loc := time.UTC
	if lg, found, err := s.leagueRepo.GetByID(ctx, leagueID); err == nil && found {
		loc = lg.Location()
	}
	today := gameday.FromTime(s.now(), loc)
	if !date.Before(today) {
		return false
	}

	complete, err := s.statProvider.AreGamesComplete(ctx, date)
	if err != nil {
		s.logger.WarnContext(ctx, "games-complete check failed, keeping day live",
			"date", date.String(),
			"error", err,
		)
		return false
	}
	return complete
}

func scoreKey(matchupID, teamID string, date gameday.Date) string {
	return matchupID + "::" + teamID + "::" + date.String()
}
