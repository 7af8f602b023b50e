package memory

import (
	"context"
	"sync"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/roster"
)

type RosterRepository struct {
	mu        sync.RWMutex
	lineups   map[string]roster.Lineup
	snapshots map[string]roster.Snapshot
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		lineups:   make(map[string]roster.Lineup),
		snapshots: make(map[string]roster.Snapshot),
	}
}

func (r *RosterRepository) GetCurrentLineup(_ context.Context, teamID string) (roster.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.lineups[teamID]
	if !ok {
		return roster.Lineup{}, false, nil
	}

	return cloneLineup(item), true, nil
}

func (r *RosterRepository) UpsertCurrentLineup(_ context.Context, lineup roster.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lineups[lineup.TeamID] = cloneLineup(lineup)
	return nil
}

func (r *RosterRepository) GetSnapshot(_ context.Context, teamID string, date gameday.Date) (roster.Snapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.snapshots[snapshotKey(teamID, date)]
	if !ok {
		return roster.Snapshot{}, false, nil
	}

	return cloneSnapshot(item), true, nil
}

func (r *RosterRepository) SaveSnapshot(_ context.Context, snapshot roster.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshotKey(snapshot.TeamID, snapshot.Date)] = cloneSnapshot(snapshot)
	return nil
}

func snapshotKey(teamID string, date gameday.Date) string {
	return teamID + "::" + date.String()
}

func cloneLineup(item roster.Lineup) roster.Lineup {
	copied := item
	copied.Assignments = append([]roster.Assignment(nil), item.Assignments...)
	return copied
}

func cloneSnapshot(item roster.Snapshot) roster.Snapshot {
	copied := item
	copied.Assignments = append([]roster.Assignment(nil), item.Assignments...)
	return copied
}
