package statline

import (
	"context"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
)

// Provider is the stat collaborator contract. GetDailyStatLine reports
// found=false when the player has no recorded stats for the date.
// AreGamesComplete is the external signal that every game on the date has
// finished; only then may a past day's score be frozen.
type Provider interface {
	GetDailyStatLine(ctx context.Context, playerID string, date gameday.Date) (StatLine, bool, error)
	AreGamesComplete(ctx context.Context, date gameday.Date) (bool, error)
}
