package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	qb "github.com/pondside/fantasy-hockey/internal/platform/querybuilder"
)

type ScoringSettingsRepository struct {
	db *sqlx.DB
}

func NewScoringSettingsRepository(db *sqlx.DB) *ScoringSettingsRepository {
	return &ScoringSettingsRepository{db: db}
}

func (r *ScoringSettingsRepository) GetSettings(ctx context.Context, leagueID string) (scoring.Settings, bool, error) {
	query, args, err := qb.Select("*").From("scoring_settings").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return scoring.Settings{}, false, fmt.Errorf("build get scoring settings query: %w", err)
	}

	var row scoringSettingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.Settings{}, false, nil
		}
		return scoring.Settings{}, false, fmt.Errorf("get scoring settings: %w", err)
	}

	weights, err := decodeWeights(row.Weights)
	if err != nil {
		return scoring.Settings{}, false, err
	}

	return scoring.Settings{
		LeagueID:  row.LeagueID,
		Version:   row.Version,
		Weights:   weights,
		UpdatedAt: row.UpdatedAt,
	}, true, nil
}

func (r *ScoringSettingsRepository) UpsertSettings(ctx context.Context, settings scoring.Settings) error {
	weights, err := encodeWeights(settings.Weights)
	if err != nil {
		return err
	}

	insertModel := scoringSettingsTableModel{
		LeagueID:  settings.LeagueID,
		Version:   settings.Version,
		Weights:   weights,
		UpdatedAt: settings.UpdatedAt,
	}
	query, args, err := qb.InsertModel("scoring_settings", insertModel, `ON CONFLICT (league_id)
DO UPDATE SET
    version = EXCLUDED.version,
    weights = EXCLUDED.weights,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert scoring settings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert scoring settings: %w", err)
	}
	return nil
}

// ScoreCacheRepository persists frozen daily scores. Inserts race benignly
// across replicas; ON CONFLICT DO NOTHING keeps the first row.
type ScoreCacheRepository struct {
	db *sqlx.DB
}

func NewScoreCacheRepository(db *sqlx.DB) *ScoreCacheRepository {
	return &ScoreCacheRepository{db: db}
}

func (r *ScoreCacheRepository) GetCachedScore(ctx context.Context, matchupID, teamID string, date gameday.Date) (scoring.CachedDailyScore, bool, error) {
	query, args, err := qb.Select("*").From("cached_daily_scores").
		Where(
			qb.Eq("matchup_id", matchupID),
			qb.Eq("team_id", teamID),
			qb.Eq("date", date.String()),
		).
		ToSQL()
	if err != nil {
		return scoring.CachedDailyScore{}, false, fmt.Errorf("build get cached score query: %w", err)
	}

	var row cachedScoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.CachedDailyScore{}, false, nil
		}
		return scoring.CachedDailyScore{}, false, fmt.Errorf("get cached score: %w", err)
	}

	breakdown, err := decodeBreakdown(row.Breakdown)
	if err != nil {
		return scoring.CachedDailyScore{}, false, err
	}

	return scoring.CachedDailyScore{
		MatchupID:       row.MatchupID,
		TeamID:          row.TeamID,
		LeagueID:        row.LeagueID,
		Date:            gameday.Date(row.Date),
		Score:           row.Score,
		Breakdown:       breakdown,
		RosterSource:    row.RosterSource,
		SettingsVersion: row.SettingsVersion,
		Immutable:       true,
		ComputedAt:      row.ComputedAt,
	}, true, nil
}

func (r *ScoreCacheRepository) PutImmutable(ctx context.Context, score scoring.CachedDailyScore) error {
	breakdown, err := encodeBreakdown(score.Breakdown)
	if err != nil {
		return err
	}

	insertModel := cachedScoreTableModel{
		MatchupID:       score.MatchupID,
		TeamID:          score.TeamID,
		LeagueID:        score.LeagueID,
		Date:            score.Date.String(),
		Score:           score.Score,
		Breakdown:       breakdown,
		RosterSource:    score.RosterSource,
		SettingsVersion: score.SettingsVersion,
		ComputedAt:      score.ComputedAt,
	}
	query, args, err := qb.InsertModel("cached_daily_scores", insertModel,
		"ON CONFLICT (matchup_id, team_id, date) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build put frozen score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put frozen score: %w", err)
	}
	return nil
}

func (r *ScoreCacheRepository) DeleteCachedScore(ctx context.Context, matchupID, teamID string, date gameday.Date) error {
	query, args, err := qb.DeleteFrom("cached_daily_scores").
		Where(
			qb.Eq("matchup_id", matchupID),
			qb.Eq("team_id", teamID),
			qb.Eq("date", date.String()),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete cached score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete cached score: %w", err)
	}
	return nil
}

func (r *ScoreCacheRepository) DeleteByLeague(ctx context.Context, leagueID string) (int, error) {
	query, args, err := qb.DeleteFrom("cached_daily_scores").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete league scores query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete league scores: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(deleted), nil
}
