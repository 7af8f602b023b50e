package roster

import (
	"context"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
)

// Repository exposes current-lineup and daily-snapshot persistence.
// SaveSnapshot upserts on (team, date); immutability of past days holds
// because callers only ever write the current league day.
type Repository interface {
	GetCurrentLineup(ctx context.Context, teamID string) (Lineup, bool, error)
	UpsertCurrentLineup(ctx context.Context, lineup Lineup) error

	GetSnapshot(ctx context.Context, teamID string, date gameday.Date) (Snapshot, bool, error)
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
}
