package usecase

import (
	"context"
	"testing"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

type gatedScorer struct {
	gate    map[string]chan struct{}
	entered chan struct{}
	scores  map[string]float64
}

func (s *gatedScorer) GetOrCompute(_ context.Context, matchupID, teamID string, date gameday.Date) (DailyScore, error) {
	if gate, ok := s.gate[teamID]; ok {
		close(s.entered)
		<-gate
	}
	return DailyScore{
		MatchupID: matchupID,
		TeamID:    teamID,
		Date:      date,
		Score:     s.scores[teamID],
	}, nil
}

func TestScoreboardDiscardsSupersededSelection(t *testing.T) {
	t.Parallel()

	slow := make(chan struct{})
	scorer := &gatedScorer{
		gate:    map[string]chan struct{}{"team-slow": slow},
		entered: make(chan struct{}),
		scores:  map[string]float64{"team-slow": 7, "team-fast": 11},
	}
	svc := NewScoreboardService(scorer, logging.NewNop())

	firstDone := make(chan struct{})
	var firstApplied bool
	go func() {
		defer close(firstDone)
		_, applied, err := svc.Select(context.Background(), "mu-1", "team-slow", "2024-01-05")
		if err != nil {
			t.Errorf("slow Select returned error: %v", err)
		}
		firstApplied = applied
	}()

	// Wait for the slow fetch to be in flight before superseding it.
	<-scorer.entered

	view, applied, err := svc.Select(context.Background(), "mu-1", "team-fast", "2024-01-05")
	if err != nil {
		t.Fatalf("fast Select returned error: %v", err)
	}
	if !applied {
		t.Fatal("newest selection should apply")
	}
	if view.Score.Score != 11 {
		t.Fatalf("applied score = %v, want 11", view.Score.Score)
	}

	close(slow)
	<-firstDone
	if firstApplied {
		t.Fatal("superseded selection must be discarded")
	}

	current, ok := svc.Current()
	if !ok || current.TeamID != "team-fast" {
		t.Fatalf("current view = %+v, want team-fast: the board never flashes the stale result", current)
	}
}

func TestScoreboardAppliesSequentialSelections(t *testing.T) {
	t.Parallel()

	scorer := &gatedScorer{scores: map[string]float64{"team-a": 4, "team-b": 9}}
	svc := NewScoreboardService(scorer, logging.NewNop())

	if _, applied, err := svc.Select(context.Background(), "mu-1", "team-a", "2024-01-05"); err != nil || !applied {
		t.Fatalf("first Select: applied=%v err=%v", applied, err)
	}
	if _, applied, err := svc.Select(context.Background(), "mu-1", "team-b", "2024-01-06"); err != nil || !applied {
		t.Fatalf("second Select: applied=%v err=%v", applied, err)
	}

	current, ok := svc.Current()
	if !ok || current.TeamID != "team-b" || current.Date != "2024-01-06" {
		t.Fatalf("current view = %+v, want team-b on 2024-01-06", current)
	}
}
