package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/domain/team"
	"github.com/pondside/fantasy-hockey/internal/platform/cache"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

// dailyScoreProvider is the slice of ScoreService the reconciler needs.
type dailyScoreProvider interface {
	GetOrCompute(ctx context.Context, matchupID, teamID string, date gameday.Date) (DailyScore, error)
}

// TeamDayScore is one team's contribution for one day of a matchup.
type TeamDayScore struct {
	Date      gameday.Date
	Score     float64
	IsFinal   bool
	FromCache bool
	Degraded  bool
}

// TeamMatchupTotal sums a team's daily scores over the matchup range.
type TeamMatchupTotal struct {
	TeamID   string
	Total    float64
	Days     []TeamDayScore
	Degraded bool
}

// MatchupScore is the reconciled view of a matchup: both team totals plus the
// per-day trail they were built from. Persisted is true when the totals come
// from the matchup row rather than a fresh reconciliation.
type MatchupScore struct {
	MatchupID   string
	LeagueID    string
	Week        int
	Status      string
	Home        TeamMatchupTotal
	Away        TeamMatchupTotal
	Persisted   bool
	FinalizedAt *time.Time
}

// StandingRow is one team's line in the league table. Only completed
// matchups with persisted totals count toward it.
type StandingRow struct {
	Rank          int
	TeamID        string
	TeamName      string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
}

// MatchupService reconciles matchup totals from daily scores and derives
// league standings from completed matchups.
type MatchupService struct {
	scores      dailyScoreProvider
	matchupRepo matchup.Repository
	teamRepo    team.Repository
	totals      *cache.Store
	now         func() time.Time
	logger      *logging.Logger
}

func NewMatchupService(
	scores dailyScoreProvider,
	matchupRepo matchup.Repository,
	teamRepo team.Repository,
	totals *cache.Store,
	logger *logging.Logger,
) *MatchupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchupService{
		scores:      scores,
		matchupRepo: matchupRepo,
		teamRepo:    teamRepo,
		totals:      totals,
		now:         time.Now,
		logger:      logger,
	}
}

// GetMatchupScore returns both team totals for the matchup. A completed
// matchup with persisted totals is a pure read; anything else sums the daily
// scores over the full date range, scoring failed days as zero so one bad
// day never blanks the whole matchup.
func (s *MatchupService) GetMatchupScore(ctx context.Context, matchupID string) (MatchupScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.GetMatchupScore")
	defer span.End()

	if matchupID == "" {
		return MatchupScore{}, fmt.Errorf("%w: matchup id is required", ErrInvalidInput)
	}

	m, found, err := s.matchupRepo.GetByID(ctx, matchupID)
	if err != nil {
		return MatchupScore{}, fmt.Errorf("get matchup: %w", err)
	}
	if !found {
		return MatchupScore{}, fmt.Errorf("%w: matchup %s", ErrNotFound, matchupID)
	}

	if matchup.IsCompletedStatus(m.Status) && m.HasPersistedScores() {
		return s.persistedScore(ctx, m)
	}

	out := s.reconcile(ctx, m)

	if matchup.IsCompletedStatus(m.Status) && !m.HasPersistedScores() {
		s.persistTotals(ctx, m, &out)
	}

	return out, nil
}

// ListStandings builds the league table from completed matchups. Matchups
// whose totals were never persisted are skipped rather than re-reconciled;
// the next score read will persist them.
func (s *MatchupService) ListStandings(ctx context.Context, leagueID string) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ListStandings")
	defer span.End()

	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams for standings: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: league %s has no teams", ErrNotFound, leagueID)
	}

	rows := make(map[string]*StandingRow, len(teams))
	for _, t := range teams {
		rows[t.ID] = &StandingRow{TeamID: t.ID, TeamName: t.Name}
	}

	completed, err := s.matchupRepo.ListByLeagueAndStatus(ctx, leagueID, matchup.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("list completed matchups: %w", err)
	}

	for _, m := range completed {
		if !m.HasPersistedScores() {
			s.logger.WarnContext(ctx, "completed matchup has no persisted totals, skipping for standings",
				"matchup_id", m.ID,
			)
			continue
		}
		home, away := rows[m.HomeTeamID], rows[m.AwayTeamID]
		if home == nil || away == nil {
			continue
		}
		applyResult(home, away, *m.HomeScore, *m.AwayScore)
	}

	table := make([]StandingRow, 0, len(rows))
	for _, row := range rows {
		table = append(table, *row)
	}
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Wins != table[j].Wins {
			return table[i].Wins > table[j].Wins
		}
		if table[i].PointsFor != table[j].PointsFor {
			return table[i].PointsFor > table[j].PointsFor
		}
		return table[i].TeamName < table[j].TeamName
	})
	for i := range table {
		table[i].Rank = i + 1
	}

	return table, nil
}

func (s *MatchupService) persistedScore(ctx context.Context, m matchup.Matchup) (MatchupScore, error) {
	build := func(context.Context) (any, error) {
		return MatchupScore{
			MatchupID:   m.ID,
			LeagueID:    m.LeagueID,
			Week:        m.Week,
			Status:      matchup.NormalizeStatus(m.Status),
			Home:        TeamMatchupTotal{TeamID: m.HomeTeamID, Total: *m.HomeScore},
			Away:        TeamMatchupTotal{TeamID: m.AwayTeamID, Total: *m.AwayScore},
			Persisted:   true,
			FinalizedAt: m.FinalizedAt,
		}, nil
	}
	if s.totals == nil {
		value, _ := build(ctx)
		return value.(MatchupScore), nil
	}

	value, err := s.totals.GetOrLoad(ctx, "matchup-total::"+m.ID, build)
	if err != nil {
		return MatchupScore{}, err
	}
	out, ok := value.(MatchupScore)
	if !ok {
		return MatchupScore{}, fmt.Errorf("unexpected matchup total cache value type %T", value)
	}
	return out, nil
}

// reconcile sums both teams concurrently. The two sides are independent
// repository-and-provider walks, so overlapping them roughly halves the
// latency of a cold week.
func (s *MatchupService) reconcile(ctx context.Context, m matchup.Matchup) MatchupScore {
	var home, away TeamMatchupTotal

	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		home = s.teamTotal(ctx, m, m.HomeTeamID)
	})
	p.Go(func() {
		away = s.teamTotal(ctx, m, m.AwayTeamID)
	})
	p.Wait()

	return MatchupScore{
		MatchupID:   m.ID,
		LeagueID:    m.LeagueID,
		Week:        m.Week,
		Status:      matchup.NormalizeStatus(m.Status),
		Home:        home,
		Away:        away,
		FinalizedAt: m.FinalizedAt,
	}
}

// teamTotal walks every day of the matchup. A day whose score cannot be
// computed counts as zero and marks the total degraded so callers know the
// number is a floor, not a settled result.
func (s *MatchupService) teamTotal(ctx context.Context, m matchup.Matchup, teamID string) TeamMatchupTotal {
	dates := m.Dates()
	out := TeamMatchupTotal{
		TeamID: teamID,
		Days:   make([]TeamDayScore, 0, len(dates)),
	}

	total := 0.0
	for _, date := range dates {
		ds, err := s.scores.GetOrCompute(ctx, m.ID, teamID, date)
		if err != nil {
			s.logger.WarnContext(ctx, "daily score failed, counting day as zero",
				"matchup_id", m.ID,
				"team_id", teamID,
				"date", date.String(),
				"error", err,
			)
			out.Days = append(out.Days, TeamDayScore{Date: date, Degraded: true})
			out.Degraded = true
			continue
		}
		total += ds.Score
		out.Days = append(out.Days, TeamDayScore{
			Date:      date,
			Score:     ds.Score,
			IsFinal:   ds.IsFinal,
			FromCache: ds.FromCache,
		})
	}

	out.Total = scoring.Round(total)
	return out
}

// persistTotals writes the reconciled totals onto a completed matchup. A
// degraded or still-live day means the total is not yet settled, so the
// write waits for a later read.
func (s *MatchupService) persistTotals(ctx context.Context, m matchup.Matchup, out *MatchupScore) {
	for _, side := range []TeamMatchupTotal{out.Home, out.Away} {
		if side.Degraded {
			s.logger.WarnContext(ctx, "not persisting matchup totals, degraded day present",
				"matchup_id", m.ID,
				"team_id", side.TeamID,
			)
			return
		}
		for _, day := range side.Days {
			if !day.IsFinal {
				return
			}
		}
	}

	finalizedAt := s.now().UTC()
	if err := s.matchupRepo.UpdateScores(ctx, m.ID, out.Home.Total, out.Away.Total, finalizedAt); err != nil {
		s.logger.WarnContext(ctx, "persist matchup totals failed",
			"matchup_id", m.ID,
			"error", err,
		)
		return
	}

	out.Persisted = true
	out.FinalizedAt = &finalizedAt
	s.logger.InfoContext(ctx, "matchup totals persisted",
		"matchup_id", m.ID,
		"home_total", out.Home.Total,
		"away_total", out.Away.Total,
	)
}

func applyResult(home, away *StandingRow, homeScore, awayScore float64) {
	home.PointsFor += homeScore
	home.PointsAgainst += awayScore
	away.PointsFor += awayScore
	away.PointsAgainst += homeScore

	switch {
	case homeScore > awayScore:
		home.Wins++
		away.Losses++
	case awayScore > homeScore:
		away.Wins++
		home.Losses++
	default:
		home.Ties++
		away.Ties++
	}
}
