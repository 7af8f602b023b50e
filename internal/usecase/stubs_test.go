package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/league"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
	"github.com/pondside/fantasy-hockey/internal/domain/team"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

// The fixed clock for scoring tests: league day 2024-01-10.
var fixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

type stubLeagueRepo struct {
	leagues map[string]league.League
}

func (s *stubLeagueRepo) GetByID(_ context.Context, id string) (league.League, bool, error) {
	lg, ok := s.leagues[id]
	return lg, ok, nil
}

func (s *stubLeagueRepo) List(context.Context) ([]league.League, error) {
	out := make([]league.League, 0, len(s.leagues))
	for _, lg := range s.leagues {
		out = append(out, lg)
	}
	return out, nil
}

type stubTeamRepo struct {
	teams map[string]team.Team
}

func (s *stubTeamRepo) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	t, ok := s.teams[id]
	return t, ok, nil
}

func (s *stubTeamRepo) ListByLeague(_ context.Context, leagueID string) ([]team.Team, error) {
	out := make([]team.Team, 0, len(s.teams))
	for _, t := range s.teams {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubRosterRepo struct {
	mu        sync.Mutex
	lineups   map[string]roster.Lineup
	snapshots map[string]roster.Snapshot
}

func newStubRosterRepo() *stubRosterRepo {
	return &stubRosterRepo{
		lineups:   make(map[string]roster.Lineup),
		snapshots: make(map[string]roster.Snapshot),
	}
}

func snapshotKey(teamID string, date gameday.Date) string {
	return teamID + "|" + date.String()
}

func (s *stubRosterRepo) GetCurrentLineup(_ context.Context, teamID string) (roster.Lineup, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lineups[teamID]
	return l, ok, nil
}

func (s *stubRosterRepo) UpsertCurrentLineup(_ context.Context, lineup roster.Lineup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineups[lineup.TeamID] = lineup
	return nil
}

func (s *stubRosterRepo) GetSnapshot(_ context.Context, teamID string, date gameday.Date) (roster.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snapshots[snapshotKey(teamID, date)]
	return snap, ok, nil
}

func (s *stubRosterRepo) SaveSnapshot(_ context.Context, snapshot roster.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshotKey(snapshot.TeamID, snapshot.Date)] = snapshot
	return nil
}

type stubMatchupRepo struct {
	mu       sync.Mutex
	matchups map[string]matchup.Matchup
	updates  int
}

func (s *stubMatchupRepo) GetByID(_ context.Context, id string) (matchup.Matchup, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matchups[id]
	return m, ok, nil
}

func (s *stubMatchupRepo) ListByLeague(_ context.Context, leagueID string) ([]matchup.Matchup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]matchup.Matchup, 0, len(s.matchups))
	for _, m := range s.matchups {
		if m.LeagueID == leagueID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMatchupRepo) ListByLeagueAndStatus(_ context.Context, leagueID, status string) ([]matchup.Matchup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]matchup.Matchup, 0, len(s.matchups))
	for _, m := range s.matchups {
		if m.LeagueID == leagueID && matchup.NormalizeStatus(m.Status) == matchup.NormalizeStatus(status) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMatchupRepo) UpdateScores(_ context.Context, id string, homeScore, awayScore float64, finalizedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matchups[id]
	if !ok {
		return nil
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.FinalizedAt = &finalizedAt
	s.matchups[id] = m
	s.updates++
	return nil
}

type stubStatProvider struct {
	mu           sync.Mutex
	lines        map[string]statline.StatLine
	completeDays map[gameday.Date]bool
	fetchErr     map[string]error
	completeErr  error
	fetchCalls   map[string]int
}

func newStubStatProvider() *stubStatProvider {
	return &stubStatProvider{
		lines:        make(map[string]statline.StatLine),
		completeDays: make(map[gameday.Date]bool),
		fetchErr:     make(map[string]error),
		fetchCalls:   make(map[string]int),
	}
}

func lineKey(playerID string, date gameday.Date) string {
	return playerID + "|" + date.String()
}

func (s *stubStatProvider) setLine(line statline.StatLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[lineKey(line.PlayerID, line.Date)] = line
}

func (s *stubStatProvider) calls(playerID string, date gameday.Date) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCalls[lineKey(playerID, date)]
}

func (s *stubStatProvider) GetDailyStatLine(_ context.Context, playerID string, date gameday.Date) (statline.StatLine, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := lineKey(playerID, date)
	s.fetchCalls[key]++
	if err := s.fetchErr[key]; err != nil {
		return statline.StatLine{}, false, err
	}
	line, ok := s.lines[key]
	return line, ok, nil
}

func (s *stubStatProvider) AreGamesComplete(_ context.Context, date gameday.Date) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completeErr != nil {
		return false, s.completeErr
	}
	return s.completeDays[date], nil
}

type stubSettingsRepo struct {
	mu       sync.Mutex
	settings map[string]scoring.Settings
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{settings: make(map[string]scoring.Settings)}
}

func (s *stubSettingsRepo) GetSettings(_ context.Context, leagueID string) (scoring.Settings, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings, ok := s.settings[leagueID]
	return settings, ok, nil
}

func (s *stubSettingsRepo) UpsertSettings(_ context.Context, settings scoring.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.LeagueID] = settings
	return nil
}

type stubScoreCache struct {
	mu   sync.Mutex
	rows map[string]scoring.CachedDailyScore
	puts int
}

func newStubScoreCache() *stubScoreCache {
	return &stubScoreCache{rows: make(map[string]scoring.CachedDailyScore)}
}

func cacheKey(matchupID, teamID string, date gameday.Date) string {
	return matchupID + "|" + teamID + "|" + date.String()
}

func (s *stubScoreCache) GetCachedScore(_ context.Context, matchupID, teamID string, date gameday.Date) (scoring.CachedDailyScore, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[cacheKey(matchupID, teamID, date)]
	return row, ok, nil
}

func (s *stubScoreCache) PutImmutable(_ context.Context, score scoring.CachedDailyScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cacheKey(score.MatchupID, score.TeamID, score.Date)
	if _, exists := s.rows[key]; exists {
		return nil
	}
	s.rows[key] = score
	s.puts++
	return nil
}

func (s *stubScoreCache) DeleteCachedScore(_ context.Context, matchupID, teamID string, date gameday.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, cacheKey(matchupID, teamID, date))
	return nil
}

func (s *stubScoreCache) DeleteByLeague(_ context.Context, leagueID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key, row := range s.rows {
		if row.LeagueID == leagueID {
			delete(s.rows, key)
			deleted++
		}
	}
	return deleted, nil
}

// scoringFixture wires the full scoring stack over stub storage: one league
// in UTC, two teams, one completed week and one in-progress week.
type scoringFixture struct {
	leagueRepo   *stubLeagueRepo
	teamRepo     *stubTeamRepo
	rosterRepo   *stubRosterRepo
	matchupRepo  *stubMatchupRepo
	statProvider *stubStatProvider
	settingsRepo *stubSettingsRepo
	scoreCache   *stubScoreCache

	resolver *RosterResolver
	scores   *ScoreService
}

const (
	fixtureLeagueID      = "lg-1"
	fixtureHomeTeamID    = "team-home"
	fixtureAwayTeamID    = "team-away"
	fixturePastMatchupID = "mu-week1"
	fixtureLiveMatchupID = "mu-week2"
	fixturePastDate      = gameday.Date("2024-01-05")
	fixtureTodayDate     = gameday.Date("2024-01-10")
)

func newScoringFixture() *scoringFixture {
	f := &scoringFixture{
		leagueRepo: &stubLeagueRepo{leagues: map[string]league.League{
			fixtureLeagueID: {ID: fixtureLeagueID, Name: "Pond League", Season: "2023-24", Timezone: "UTC"},
		}},
		teamRepo: &stubTeamRepo{teams: map[string]team.Team{
			fixtureHomeTeamID: {ID: fixtureHomeTeamID, LeagueID: fixtureLeagueID, Name: "Ice Hogs"},
			fixtureAwayTeamID: {ID: fixtureAwayTeamID, LeagueID: fixtureLeagueID, Name: "Zamboni Drivers"},
		}},
		rosterRepo: newStubRosterRepo(),
		matchupRepo: &stubMatchupRepo{matchups: map[string]matchup.Matchup{
			fixturePastMatchupID: {
				ID:         fixturePastMatchupID,
				LeagueID:   fixtureLeagueID,
				Week:       1,
				HomeTeamID: fixtureHomeTeamID,
				AwayTeamID: fixtureAwayTeamID,
				StartDate:  "2024-01-01",
				EndDate:    "2024-01-07",
				Status:     matchup.StatusCompleted,
			},
			fixtureLiveMatchupID: {
				ID:         fixtureLiveMatchupID,
				LeagueID:   fixtureLeagueID,
				Week:       2,
				HomeTeamID: fixtureHomeTeamID,
				AwayTeamID: fixtureAwayTeamID,
				StartDate:  "2024-01-08",
				EndDate:    "2024-01-14",
				Status:     matchup.StatusInProgress,
			},
		}},
		statProvider: newStubStatProvider(),
		settingsRepo: newStubSettingsRepo(),
		scoreCache:   newStubScoreCache(),
	}

	for d := gameday.Date("2024-01-01"); d.Before(fixtureTodayDate); d = d.Next() {
		f.statProvider.completeDays[d] = true
	}

	nop := logging.NewNop()
	f.resolver = NewRosterResolver(f.rosterRepo, f.teamRepo, f.leagueRepo, nop)
	f.resolver.now = func() time.Time { return fixedNow }

	f.scores = NewScoreService(f.resolver, f.statProvider, f.settingsRepo, f.scoreCache, f.matchupRepo, f.leagueRepo, nop)
	f.scores.now = func() time.Time { return fixedNow }

	return f
}

func (f *scoringFixture) freezeSnapshot(teamID string, date gameday.Date, assignments ...roster.Assignment) {
	_ = f.rosterRepo.SaveSnapshot(context.Background(), roster.Snapshot{
		TeamID:      teamID,
		Date:        date,
		Assignments: assignments,
		CapturedAt:  fixedNow.AddDate(0, 0, -7),
	})
}

func (f *scoringFixture) setCurrentLineup(teamID string, assignments ...roster.Assignment) {
	_ = f.rosterRepo.UpsertCurrentLineup(context.Background(), roster.Lineup{
		TeamID:      teamID,
		Assignments: assignments,
		UpdatedAt:   fixedNow,
	})
}

func active(playerID, position string) roster.Assignment {
	return roster.Assignment{PlayerID: playerID, Position: position, Slot: roster.SlotActive}
}

func benched(playerID, position string) roster.Assignment {
	return roster.Assignment{PlayerID: playerID, Position: position, Slot: roster.SlotBench}
}
