package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
	"github.com/pondside/fantasy-hockey/internal/platform/cache"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

func newMatchupService(f *scoringFixture) *MatchupService {
	svc := NewMatchupService(f.scores, f.matchupRepo, f.teamRepo, cache.NewStore(time.Minute), logging.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seedWeek1(f *scoringFixture) {
	for _, d := range gameday.Range("2024-01-01", "2024-01-07") {
		f.freezeSnapshot(fixtureHomeTeamID, d, active("skater-1", "C"))
		f.freezeSnapshot(fixtureAwayTeamID, d, active("skater-9", "RW"))
	}
	// Home scores one goal a day; away only scores on two days.
	for _, d := range gameday.Range("2024-01-01", "2024-01-07") {
		f.statProvider.setLine(statline.StatLine{PlayerID: "skater-1", Date: d, Goals: 1})
	}
	f.statProvider.setLine(statline.StatLine{PlayerID: "skater-9", Date: "2024-01-02", Goals: 3})
	f.statProvider.setLine(statline.StatLine{PlayerID: "skater-9", Date: "2024-01-06", Goals: 1})
}

func TestGetMatchupScoreSumsRangeAndPersists(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	seedWeek1(f)
	svc := newMatchupService(f)

	out, err := svc.GetMatchupScore(context.Background(), fixturePastMatchupID)
	if err != nil {
		t.Fatalf("GetMatchupScore returned error: %v", err)
	}

	// Home: 7 days * 1 goal * 3. Away: 4 goals * 3.
	if out.Home.Total != 21 {
		t.Fatalf("home total = %v, want 21", out.Home.Total)
	}
	if out.Away.Total != 12 {
		t.Fatalf("away total = %v, want 12", out.Away.Total)
	}
	if len(out.Home.Days) != 7 {
		t.Fatalf("home day count = %d, want 7", len(out.Home.Days))
	}
	if !out.Persisted {
		t.Fatal("completed matchup with all days frozen should persist its totals")
	}

	m, _, err := f.matchupRepo.GetByID(context.Background(), fixturePastMatchupID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if !m.HasPersistedScores() || *m.HomeScore != 21 || *m.AwayScore != 12 {
		t.Fatalf("persisted scores = %+v, want 21 / 12", m)
	}
}

func TestGetMatchupScoreColdAndWarmAgree(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	seedWeek1(f)
	svc := newMatchupService(f)

	cold, err := svc.GetMatchupScore(context.Background(), fixturePastMatchupID)
	if err != nil {
		t.Fatalf("cold GetMatchupScore returned error: %v", err)
	}
	warm, err := svc.GetMatchupScore(context.Background(), fixturePastMatchupID)
	if err != nil {
		t.Fatalf("warm GetMatchupScore returned error: %v", err)
	}

	if !warm.Persisted {
		t.Fatal("warm read should serve persisted totals")
	}
	if cold.Home.Total != warm.Home.Total || cold.Away.Total != warm.Away.Total {
		t.Fatalf("cold totals %v/%v != warm totals %v/%v",
			cold.Home.Total, cold.Away.Total, warm.Home.Total, warm.Away.Total)
	}
}

type flakyScorer struct {
	inner    dailyScoreProvider
	failDate gameday.Date
}

func (s *flakyScorer) GetOrCompute(ctx context.Context, matchupID, teamID string, date gameday.Date) (DailyScore, error) {
	if date == s.failDate {
		return DailyScore{}, fmt.Errorf("score store unavailable")
	}
	return s.inner.GetOrCompute(ctx, matchupID, teamID, date)
}

func TestGetMatchupScoreDegradesFailedDayToZero(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	seedWeek1(f)
	scorer := &flakyScorer{inner: f.scores, failDate: "2024-01-03"}
	svc := NewMatchupService(scorer, f.matchupRepo, f.teamRepo, cache.NewStore(time.Minute), logging.NewNop())
	svc.now = func() time.Time { return fixedNow }

	out, err := svc.GetMatchupScore(context.Background(), fixturePastMatchupID)
	if err != nil {
		t.Fatalf("GetMatchupScore returned error: %v", err)
	}

	if out.Home.Total != 18 {
		t.Fatalf("home total = %v, want 18: the failed day counts as zero", out.Home.Total)
	}
	if !out.Home.Degraded {
		t.Fatal("home total should be marked degraded")
	}
	if out.Persisted {
		t.Fatal("degraded totals must not be persisted")
	}

	m, _, err := f.matchupRepo.GetByID(context.Background(), fixturePastMatchupID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if m.HasPersistedScores() {
		t.Fatal("matchup row must stay unsettled while a day is degraded")
	}
}

func TestListStandingsReadsOnlyCompletedMatchups(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	score := func(v float64) *float64 { return &v }
	f.matchupRepo.matchups["mu-week0"] = matchup.Matchup{
		ID:         "mu-week0",
		LeagueID:   fixtureLeagueID,
		Week:       0,
		HomeTeamID: fixtureAwayTeamID,
		AwayTeamID: fixtureHomeTeamID,
		StartDate:  "2023-12-25",
		EndDate:    "2023-12-31",
		Status:     matchup.StatusCompleted,
		HomeScore:  score(40),
		AwayScore:  score(31.5),
	}
	// Week 1 is completed but never persisted; week 2 is in progress. Neither
	// may count.
	svc := newMatchupService(f)

	table, err := svc.ListStandings(context.Background(), fixtureLeagueID)
	if err != nil {
		t.Fatalf("ListStandings returned error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("standings rows = %d, want 2", len(table))
	}

	leader := table[0]
	if leader.TeamID != fixtureAwayTeamID || leader.Wins != 1 || leader.Rank != 1 {
		t.Fatalf("leader = %+v, want %s with 1 win at rank 1", leader, fixtureAwayTeamID)
	}
	second := table[1]
	if second.TeamID != fixtureHomeTeamID || second.Losses != 1 || second.PointsFor != 31.5 {
		t.Fatalf("second = %+v, want %s with 1 loss and 31.5 points for", second, fixtureHomeTeamID)
	}
}

func TestGetMatchupScoreUnknownMatchup(t *testing.T) {
	t.Parallel()

	f := newScoringFixture()
	svc := newMatchupService(f)

	if _, err := svc.GetMatchupScore(context.Background(), "mu-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
