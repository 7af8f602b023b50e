package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
)

type MatchupRepository struct {
	mu     sync.RWMutex
	items  map[string]matchup.Matchup
	orders []string
}

func NewMatchupRepository(matchups []matchup.Matchup) *MatchupRepository {
	items := make(map[string]matchup.Matchup, len(matchups))
	orders := make([]string, 0, len(matchups))

	for _, m := range matchups {
		m.Status = matchup.NormalizeStatus(m.Status)
		items[m.ID] = m
		orders = append(orders, m.ID)
	}

	return &MatchupRepository{
		items:  items,
		orders: orders,
	}
}

func (r *MatchupRepository) GetByID(_ context.Context, matchupID string) (matchup.Matchup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchupID]
	if !ok {
		return matchup.Matchup{}, false, nil
	}

	return cloneMatchup(m), true, nil
}

func (r *MatchupRepository) ListByLeague(_ context.Context, leagueID string) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0, len(r.orders))
	for _, id := range r.orders {
		if m := r.items[id]; m.LeagueID == leagueID {
			out = append(out, cloneMatchup(m))
		}
	}

	return out, nil
}

func (r *MatchupRepository) ListByLeagueAndStatus(_ context.Context, leagueID, status string) ([]matchup.Matchup, error) {
	status = matchup.NormalizeStatus(status)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0, len(r.orders))
	for _, id := range r.orders {
		if m := r.items[id]; m.LeagueID == leagueID && m.Status == status {
			out = append(out, cloneMatchup(m))
		}
	}

	return out, nil
}

func (r *MatchupRepository) UpdateScores(_ context.Context, matchupID string, homeScore, awayScore float64, finalizedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchupID]
	if !ok {
		return nil
	}

	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.FinalizedAt = &finalizedAt
	r.items[matchupID] = m
	return nil
}

func cloneMatchup(m matchup.Matchup) matchup.Matchup {
	copied := m
	if m.HomeScore != nil {
		v := *m.HomeScore
		copied.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		copied.AwayScore = &v
	}
	if m.FinalizedAt != nil {
		v := *m.FinalizedAt
		copied.FinalizedAt = &v
	}
	return copied
}
