package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

func TestBackfillMaterializesCompletedWeeks(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	seedWeek1(f)
	svc := NewBackfillService(f.scores, f.matchupRepo, nil, 4, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }

	report, err := svc.Run(context.Background(), fixtureLeagueID)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// One completed week, two teams, seven days each.
	if report.Days != 14 {
		t.Fatalf("days = %d, want 14", report.Days)
	}
	if report.Computed != 14 || report.Skipped != 0 || report.Failed != 0 {
		t.Fatalf("report = %+v, want 14 computed on a cold cache", report)
	}
	if f.scoreCache.puts != 14 {
		t.Fatalf("frozen rows = %d, want 14", f.scoreCache.puts)
	}
	if report.RunID == "" {
		t.Fatal("expected a run id on the report")
	}
}

func TestBackfillRerunSkipsFrozenDays(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	seedWeek1(f)
	svc := NewBackfillService(f.scores, f.matchupRepo, nil, 4, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	if _, err := svc.Run(ctx, fixtureLeagueID); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	report, err := svc.Run(ctx, fixtureLeagueID)
	if err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}

	if report.Computed != 0 || report.Skipped != 14 {
		t.Fatalf("report = %+v, want every day skipped on rerun", report)
	}
	if f.scoreCache.puts != 14 {
		t.Fatalf("frozen rows = %d, want 14: rerun writes nothing", f.scoreCache.puts)
	}
}

func TestBackfillCountsFailures(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	seedWeek1(f)
	scorer := &flakyScorer{inner: f.scores, failDate: "2024-01-04"}
	svc := NewBackfillService(scorer, f.matchupRepo, nil, 4, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }

	report, err := svc.Run(context.Background(), fixtureLeagueID)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if report.Failed != 2 {
		t.Fatalf("failed = %d, want 2: one date fails for both teams", report.Failed)
	}
	if report.Computed != 12 {
		t.Fatalf("computed = %d, want 12", report.Computed)
	}
}
