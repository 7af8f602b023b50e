package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	qb "github.com/pondside/fantasy-hockey/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetCurrentLineup(ctx context.Context, teamID string) (roster.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("current_lineups").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return roster.Lineup{}, false, fmt.Errorf("build get current lineup query: %w", err)
	}

	var row currentLineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Lineup{}, false, nil
		}
		return roster.Lineup{}, false, fmt.Errorf("get current lineup: %w", err)
	}

	assignments, err := decodeAssignments(row.Assignments)
	if err != nil {
		return roster.Lineup{}, false, err
	}

	return roster.Lineup{
		TeamID:      row.TeamID,
		Assignments: assignments,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

func (r *RosterRepository) UpsertCurrentLineup(ctx context.Context, lineup roster.Lineup) error {
	assignments, err := encodeAssignments(lineup.Assignments)
	if err != nil {
		return err
	}

	insertModel := currentLineupInsertModel{
		TeamID:      lineup.TeamID,
		Assignments: assignments,
		UpdatedAt:   lineup.UpdatedAt,
	}
	query, args, err := qb.InsertModel("current_lineups", insertModel, `ON CONFLICT (team_id)
DO UPDATE SET
    assignments = EXCLUDED.assignments,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert current lineup query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert current lineup: %w", err)
	}
	return nil
}

func (r *RosterRepository) GetSnapshot(ctx context.Context, teamID string, date gameday.Date) (roster.Snapshot, bool, error) {
	query, args, err := qb.Select("*").From("lineup_snapshots").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("date", date.String()),
		).
		ToSQL()
	if err != nil {
		return roster.Snapshot{}, false, fmt.Errorf("build get lineup snapshot query: %w", err)
	}

	var row lineupSnapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Snapshot{}, false, nil
		}
		return roster.Snapshot{}, false, fmt.Errorf("get lineup snapshot: %w", err)
	}

	assignments, err := decodeAssignments(row.Assignments)
	if err != nil {
		return roster.Snapshot{}, false, err
	}

	return roster.Snapshot{
		TeamID:      row.TeamID,
		Date:        gameday.Date(row.Date),
		Assignments: assignments,
		CapturedAt:  row.CapturedAt,
	}, true, nil
}

func (r *RosterRepository) SaveSnapshot(ctx context.Context, snapshot roster.Snapshot) error {
	assignments, err := encodeAssignments(snapshot.Assignments)
	if err != nil {
		return err
	}

	insertModel := lineupSnapshotInsertModel{
		TeamID:      snapshot.TeamID,
		Date:        snapshot.Date.String(),
		Assignments: assignments,
		CapturedAt:  snapshot.CapturedAt,
	}
	query, args, err := qb.InsertModel("lineup_snapshots", insertModel, `ON CONFLICT (team_id, date)
DO UPDATE SET
    assignments = EXCLUDED.assignments,
    captured_at = EXCLUDED.captured_at`)
	if err != nil {
		return fmt.Errorf("build save lineup snapshot query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save lineup snapshot: %w", err)
	}
	return nil
}
