package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	qb "github.com/pondside/fantasy-hockey/internal/platform/querybuilder"
)

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

func (r *MatchupRepository) GetByID(ctx context.Context, matchupID string) (matchup.Matchup, bool, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(qb.Eq("id", matchupID)).
		ToSQL()
	if err != nil {
		return matchup.Matchup{}, false, fmt.Errorf("build get matchup by id query: %w", err)
	}

	var row matchupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchup.Matchup{}, false, nil
		}
		return matchup.Matchup{}, false, fmt.Errorf("get matchup by id: %w", err)
	}

	return matchupFromRow(row), true, nil
}

func (r *MatchupRepository) ListByLeague(ctx context.Context, leagueID string) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("week", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups query: %w", err)
	}

	return r.selectMatchups(ctx, query, args)
}

func (r *MatchupRepository) ListByLeagueAndStatus(ctx context.Context, leagueID, status string) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("status", matchup.NormalizeStatus(status)),
		).
		OrderBy("week", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups by status query: %w", err)
	}

	return r.selectMatchups(ctx, query, args)
}

func (r *MatchupRepository) UpdateScores(ctx context.Context, matchupID string, homeScore, awayScore float64, finalizedAt time.Time) error {
	query, args, err := qb.Update("matchups").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("finalized_at", finalizedAt).
		Where(qb.Eq("id", matchupID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update matchup scores query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update matchup scores: %w", err)
	}
	return nil
}

func (r *MatchupRepository) selectMatchups(ctx context.Context, query string, args []any) ([]matchup.Matchup, error) {
	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchups: %w", err)
	}

	out := make([]matchup.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchupFromRow(row))
	}
	return out, nil
}

func matchupFromRow(row matchupTableModel) matchup.Matchup {
	return matchup.Matchup{
		ID:          row.ID,
		LeagueID:    row.LeagueID,
		Week:        row.Week,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		StartDate:   gameday.Date(row.StartDate),
		EndDate:     gameday.Date(row.EndDate),
		Status:      matchup.NormalizeStatus(row.Status),
		HomeScore:   row.HomeScore,
		AwayScore:   row.AwayScore,
		FinalizedAt: row.FinalizedAt,
	}
}
