package team

import "context"

// Repository exposes team read operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
}
