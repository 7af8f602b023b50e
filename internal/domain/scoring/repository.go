package scoring

import (
	"context"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
)

// SettingsRepository persists per-league scoring settings.
type SettingsRepository interface {
	GetSettings(ctx context.Context, leagueID string) (Settings, bool, error)
	UpsertSettings(ctx context.Context, settings Settings) error
}

// ScoreCacheRepository persists frozen daily scores. PutImmutable must keep
// the first write for a key: concurrent misses may each compute, but the
// value is a pure function of its inputs so whichever write lands is correct.
type ScoreCacheRepository interface {
	GetCachedScore(ctx context.Context, matchupID, teamID string, date gameday.Date) (CachedDailyScore, bool, error)
	PutImmutable(ctx context.Context, score CachedDailyScore) error
	DeleteCachedScore(ctx context.Context, matchupID, teamID string, date gameday.Date) error
	DeleteByLeague(ctx context.Context, leagueID string) (int, error)
}
