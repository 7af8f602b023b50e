package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
	qb "github.com/pondside/fantasy-hockey/internal/platform/querybuilder"
)

// StatLineRepository serves stat lines out of the locally ingested tables.
// It satisfies the same provider contract as the remote stats feed client,
// so deployments can score from either source.
type StatLineRepository struct {
	db *sqlx.DB
}

func NewStatLineRepository(db *sqlx.DB) *StatLineRepository {
	return &StatLineRepository{db: db}
}

func (r *StatLineRepository) GetDailyStatLine(ctx context.Context, playerID string, date gameday.Date) (statline.StatLine, bool, error) {
	query, args, err := qb.Select("*").From("daily_stat_lines").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("date", date.String()),
		).
		ToSQL()
	if err != nil {
		return statline.StatLine{}, false, fmt.Errorf("build get stat line query: %w", err)
	}

	var row statLineTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return statline.StatLine{}, false, nil
		}
		return statline.StatLine{}, false, fmt.Errorf("get stat line: %w", err)
	}

	return statLineFromRow(row), true, nil
}

func (r *StatLineRepository) AreGamesComplete(ctx context.Context, date gameday.Date) (bool, error) {
	query, args, err := qb.Select("games_complete").From("game_days").
		Where(qb.Eq("date", date.String())).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build games complete query: %w", err)
	}

	var complete bool
	if err := r.db.GetContext(ctx, &complete, query, args...); err != nil {
		if isNotFound(err) {
			// No day record yet means the ingestion pipeline has not closed
			// the day out.
			return false, nil
		}
		return false, fmt.Errorf("get games complete: %w", err)
	}

	return complete, nil
}

// UpsertStatLine is the ingestion write path. Stat corrections overwrite the
// row; frozen scores are insulated from them by the immutable score cache.
func (r *StatLineRepository) UpsertStatLine(ctx context.Context, line statline.StatLine) error {
	insertModel := statLineTableModel{
		PlayerID:          line.PlayerID,
		Date:              line.Date.String(),
		Goals:             line.Goals,
		Assists:           line.Assists,
		PowerPlayPoints:   line.PowerPlayPoints,
		ShortHandedPoints: line.ShortHandedPoints,
		ShotsOnGoal:       line.ShotsOnGoal,
		Blocks:            line.Blocks,
		Hits:              line.Hits,
		PenaltyMinutes:    line.PenaltyMinutes,
		PlusMinus:         line.PlusMinus,
		Wins:              line.Wins,
		Saves:             line.Saves,
		Shutouts:          line.Shutouts,
		GoalsAgainst:      line.GoalsAgainst,
		IngestedAt:        time.Now().UTC(),
	}
	query, args, err := qb.InsertModel("daily_stat_lines", insertModel, `ON CONFLICT (player_id, date)
DO UPDATE SET
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    power_play_points = EXCLUDED.power_play_points,
    short_handed_points = EXCLUDED.short_handed_points,
    shots_on_goal = EXCLUDED.shots_on_goal,
    blocks = EXCLUDED.blocks,
    hits = EXCLUDED.hits,
    penalty_minutes = EXCLUDED.penalty_minutes,
    plus_minus = EXCLUDED.plus_minus,
    wins = EXCLUDED.wins,
    saves = EXCLUDED.saves,
    shutouts = EXCLUDED.shutouts,
    goals_against = EXCLUDED.goals_against,
    ingested_at = EXCLUDED.ingested_at`)
	if err != nil {
		return fmt.Errorf("build upsert stat line query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert stat line: %w", err)
	}
	return nil
}

func (r *StatLineRepository) SetGamesComplete(ctx context.Context, date gameday.Date, complete bool) error {
	insertModel := gameDayTableModel{
		Date:          date.String(),
		GamesComplete: complete,
		UpdatedAt:     time.Now().UTC(),
	}
	query, args, err := qb.InsertModel("game_days", insertModel, `ON CONFLICT (date)
DO UPDATE SET
    games_complete = EXCLUDED.games_complete,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build set games complete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set games complete: %w", err)
	}
	return nil
}

func statLineFromRow(row statLineTableModel) statline.StatLine {
	return statline.StatLine{
		PlayerID:          row.PlayerID,
		Date:              gameday.Date(row.Date),
		Goals:             row.Goals,
		Assists:           row.Assists,
		PowerPlayPoints:   row.PowerPlayPoints,
		ShortHandedPoints: row.ShortHandedPoints,
		ShotsOnGoal:       row.ShotsOnGoal,
		Blocks:            row.Blocks,
		Hits:              row.Hits,
		PenaltyMinutes:    row.PenaltyMinutes,
		PlusMinus:         row.PlusMinus,
		Wins:              row.Wins,
		Saves:             row.Saves,
		Shutouts:          row.Shutouts,
		GoalsAgainst:      row.GoalsAgainst,
	}
}
