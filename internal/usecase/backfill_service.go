package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/matchup"
	idgen "github.com/pondside/fantasy-hockey/internal/platform/id"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

const defaultBackfillWorkers = 8

// BackfillReport summarizes one backfill run.
type BackfillReport struct {
	RunID    string
	LeagueID string
	Days     int
	Computed int
	Skipped  int
	Failed   int
	Took     time.Duration
}

// BackfillService walks every (team, date) of a league's completed matchups
// and materializes the frozen score rows that lazy reads have not touched
// yet. Days already frozen count as skipped; the at-most-once guarantee of
// the score path makes reruns safe.
type BackfillService struct {
	scores      dailyScoreProvider
	matchupRepo matchup.Repository
	idGen       idgen.Generator
	workers     int
	now         func() time.Time
	logger      *logging.Logger
}

func NewBackfillService(scores dailyScoreProvider, matchupRepo matchup.Repository, idGen idgen.Generator, workers int, logger *logging.Logger) *BackfillService {
	if idGen == nil {
		idGen = idgen.NewRandomGenerator()
	}
	if workers <= 0 {
		workers = defaultBackfillWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BackfillService{
		scores:      scores,
		matchupRepo: matchupRepo,
		idGen:       idGen,
		workers:     workers,
		now:         time.Now,
		logger:      logger,
	}
}

type backfillTask struct {
	matchupID string
	teamID    string
	date      string
}

func (s *BackfillService) Run(ctx context.Context, leagueID string) (BackfillReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.Run")
	defer span.End()

	if leagueID == "" {
		return BackfillReport{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	runID, err := s.idGen.NewID()
	if err != nil {
		return BackfillReport{}, fmt.Errorf("generate backfill run id: %w", err)
	}

	completed, err := s.matchupRepo.ListByLeagueAndStatus(ctx, leagueID, matchup.StatusCompleted)
	if err != nil {
		return BackfillReport{}, fmt.Errorf("list completed matchups for backfill: %w", err)
	}

	started := s.now()
	s.logger.InfoContext(ctx, "score backfill started",
		"run_id", runID,
		"league_id", leagueID,
		"matchups", len(completed),
	)

	p, err := ants.NewPool(s.workers)
	if err != nil {
		return BackfillReport{}, fmt.Errorf("create backfill worker pool: %w", err)
	}
	defer p.Release()

	var computed, skipped, failed atomic.Int64
	var wg sync.WaitGroup
	days := 0

	for _, m := range completed {
		for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
			for _, date := range m.Dates() {
				days++
				task := backfillTask{matchupID: m.ID, teamID: teamID, date: date.String()}
				wg.Add(1)
				if err := p.Submit(func() {
					defer wg.Done()
					s.runTask(ctx, task, &computed, &skipped, &failed)
				}); err != nil {
					wg.Done()
					failed.Add(1)
					s.logger.WarnContext(ctx, "backfill task submit failed",
						"matchup_id", task.matchupID,
						"error", err,
					)
				}
			}
		}
	}
	wg.Wait()

	report := BackfillReport{
		RunID:    runID,
		LeagueID: leagueID,
		Days:     days,
		Computed: int(computed.Load()),
		Skipped:  int(skipped.Load()),
		Failed:   int(failed.Load()),
		Took:     s.now().Sub(started),
	}
	s.logger.InfoContext(ctx, "score backfill finished",
		"run_id", runID,
		"league_id", leagueID,
		"days", report.Days,
		"computed", report.Computed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

func (s *BackfillService) runTask(ctx context.Context, task backfillTask, computed, skipped, failed *atomic.Int64) {
	ds, err := s.scores.GetOrCompute(ctx, task.matchupID, task.teamID, gameday.Date(task.date))
	if err != nil {
		failed.Add(1)
		s.logger.WarnContext(ctx, "backfill day failed",
			"matchup_id", task.matchupID,
			"team_id", task.teamID,
			"date", task.date,
			"error", err,
		)
		return
	}
	if ds.FromCache {
		skipped.Add(1)
		return
	}
	computed.Add(1)
}
