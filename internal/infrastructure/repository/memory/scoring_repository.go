package memory

import (
	"context"
	"sync"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
)

type ScoringSettingsRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.Settings
}

func NewScoringSettingsRepository(seed []scoring.Settings) *ScoringSettingsRepository {
	items := make(map[string]scoring.Settings, len(seed))
	for _, s := range seed {
		items[s.LeagueID] = s
	}
	return &ScoringSettingsRepository{items: items}
}

func (r *ScoringSettingsRepository) GetSettings(_ context.Context, leagueID string) (scoring.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[leagueID]
	if !ok {
		return scoring.Settings{}, false, nil
	}

	return s, true, nil
}

func (r *ScoringSettingsRepository) UpsertSettings(_ context.Context, settings scoring.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[settings.LeagueID] = settings
	return nil
}

// ScoreCacheRepository stores frozen daily scores. The first write for a key
// wins; later writes for the same (matchup, team, date) are dropped.
type ScoreCacheRepository struct {
	mu    sync.RWMutex
	items map[string]scoring.CachedDailyScore
}

func NewScoreCacheRepository() *ScoreCacheRepository {
	return &ScoreCacheRepository{items: make(map[string]scoring.CachedDailyScore)}
}

func (r *ScoreCacheRepository) GetCachedScore(_ context.Context, matchupID, teamID string, date gameday.Date) (scoring.CachedDailyScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[scoreKey(matchupID, teamID, date)]
	if !ok {
		return scoring.CachedDailyScore{}, false, nil
	}

	return cloneCachedScore(item), true, nil
}

func (r *ScoreCacheRepository) PutImmutable(_ context.Context, score scoring.CachedDailyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scoreKey(score.MatchupID, score.TeamID, score.Date)
	if _, exists := r.items[key]; exists {
		return nil
	}

	r.items[key] = cloneCachedScore(score)
	return nil
}

func (r *ScoreCacheRepository) DeleteCachedScore(_ context.Context, matchupID, teamID string, date gameday.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, scoreKey(matchupID, teamID, date))
	return nil
}

func (r *ScoreCacheRepository) DeleteByLeague(_ context.Context, leagueID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for key, item := range r.items {
		if item.LeagueID == leagueID {
			delete(r.items, key)
			deleted++
		}
	}

	return deleted, nil
}

func scoreKey(matchupID, teamID string, date gameday.Date) string {
	return matchupID + "::" + teamID + "::" + date.String()
}

func cloneCachedScore(item scoring.CachedDailyScore) scoring.CachedDailyScore {
	copied := item
	copied.Breakdown = append([]scoring.PlayerContribution(nil), item.Breakdown...)
	return copied
}
