package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

// ScoreboardView is the last applied scoreboard selection.
type ScoreboardView struct {
	MatchupID string
	TeamID    string
	Date      gameday.Date
	Score     DailyScore
}

// ScoreboardService serializes scoreboard selections with a generation
// counter: each Select supersedes all in-flight ones, and a fetch that
// finishes after being superseded is discarded instead of flashing onto the
// board.
type ScoreboardService struct {
	scores dailyScoreProvider
	logger *logging.Logger

	generation atomic.Uint64

	mu      sync.RWMutex
	current ScoreboardView
	hasView bool
}

func NewScoreboardService(scores dailyScoreProvider, logger *logging.Logger) *ScoreboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreboardService{
		scores: scores,
		logger: logger,
	}
}

// Select fetches the score for the new selection. The returned bool is false
// when a newer Select arrived while this one was fetching; the result is
// then dropped and the board keeps whichever view the newest fetch applies.
func (s *ScoreboardService) Select(ctx context.Context, matchupID, teamID string, date gameday.Date) (ScoreboardView, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreboardService.Select")
	defer span.End()

	if matchupID == "" || teamID == "" {
		return ScoreboardView{}, false, fmt.Errorf("%w: matchup id and team id are required", ErrInvalidInput)
	}

	generation := s.generation.Add(1)

	score, err := s.scores.GetOrCompute(ctx, matchupID, teamID, date)
	if err != nil {
		return ScoreboardView{}, false, err
	}

	view := ScoreboardView{
		MatchupID: matchupID,
		TeamID:    teamID,
		Date:      date,
		Score:     score,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation.Load() != generation {
		s.logger.DebugContext(ctx, "scoreboard selection superseded, discarding result",
			"matchup_id", matchupID,
			"team_id", teamID,
			"date", date.String(),
		)
		return ScoreboardView{}, false, nil
	}

	s.current = view
	s.hasView = true
	return view, true, nil
}

// Current returns the last applied view, if any selection has completed.
func (s *ScoreboardService) Current() (ScoreboardView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasView
}
