package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestRosterResolverPastDayUsesSnapshotOverCurrentLineup(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	f.freezeSnapshot(fixtureHomeTeamID, fixturePastDate,
		active("player-a", "C"),
		active("player-b", "LW"),
	)
	// The owner has since swapped B for C; the past day must not see it.
	f.setCurrentLineup(fixtureHomeTeamID,
		active("player-a", "C"),
		active("player-c", "RW"),
	)

	res, err := f.resolver.Resolve(context.Background(), fixtureHomeTeamID, fixturePastDate)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Source != SourceFrozen {
		t.Fatalf("source = %q, want %q", res.Source, SourceFrozen)
	}
	if len(res.Active) != 2 {
		t.Fatalf("active count = %d, want 2", len(res.Active))
	}
	if res.Active[0].PlayerID != "player-a" || res.Active[1].PlayerID != "player-b" {
		t.Fatalf("active players = %s, %s; want player-a, player-b", res.Active[0].PlayerID, res.Active[1].PlayerID)
	}
}

func TestRosterResolverTodayUsesLiveLineupEvenWithSnapshot(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	f.freezeSnapshot(fixtureHomeTeamID, fixtureTodayDate, active("player-a", "C"))
	f.setCurrentLineup(fixtureHomeTeamID,
		active("player-a", "C"),
		active("player-d", "G"),
	)

	res, err := f.resolver.Resolve(context.Background(), fixtureHomeTeamID, fixtureTodayDate)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Source != SourceLive {
		t.Fatalf("source = %q, want %q", res.Source, SourceLive)
	}
	if len(res.Active) != 2 {
		t.Fatalf("active count = %d, want 2", len(res.Active))
	}
}

func TestRosterResolverPastDayWithoutSnapshotIsFrozenMissing(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	f.setCurrentLineup(fixtureHomeTeamID, active("player-a", "C"))

	res, err := f.resolver.Resolve(context.Background(), fixtureHomeTeamID, fixturePastDate)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Source != SourceFrozenMissing {
		t.Fatalf("source = %q, want %q", res.Source, SourceFrozenMissing)
	}
	if len(res.Active) != 0 {
		t.Fatalf("active count = %d, want 0: a missing snapshot never falls back to the current lineup", len(res.Active))
	}
}

func TestRosterResolverFiltersBenchAndReserve(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	f.freezeSnapshot(fixtureHomeTeamID, fixturePastDate,
		active("player-a", "C"),
		benched("player-b", "LW"),
		active("player-d", "G"),
	)

	res, err := f.resolver.Resolve(context.Background(), fixtureHomeTeamID, fixturePastDate)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(res.Active) != 2 {
		t.Fatalf("active count = %d, want 2", len(res.Active))
	}
	for _, a := range res.Active {
		if a.PlayerID == "player-b" {
			t.Fatal("benched player leaked into the active set")
		}
	}
}

func TestRosterResolverUnknownTeam(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()

	if _, err := f.resolver.Resolve(context.Background(), "team-missing", fixturePastDate); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if _, err := f.resolver.Resolve(context.Background(), "", fixturePastDate); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
