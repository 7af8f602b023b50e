package matchup

import (
	"context"
	"time"
)

// Repository exposes matchup persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Matchup, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Matchup, error)
	ListByLeagueAndStatus(ctx context.Context, leagueID, status string) ([]Matchup, error)
	UpdateScores(ctx context.Context, id string, homeScore, awayScore float64, finalizedAt time.Time) error
}
