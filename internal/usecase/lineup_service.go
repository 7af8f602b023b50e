package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/league"
	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/domain/team"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

// LineupService owns current-lineup reads and writes. Every write also
// refreshes the team's snapshot for the current league day, so the roster a
// day froze with is always the last lineup saved during that day.
type LineupService struct {
	rosterRepo roster.Repository
	teamRepo   team.Repository
	leagueRepo league.Repository
	now        func() time.Time
	logger     *logging.Logger
}

func NewLineupService(
	rosterRepo roster.Repository,
	teamRepo team.Repository,
	leagueRepo league.Repository,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		rosterRepo: rosterRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *LineupService) GetLineup(ctx context.Context, teamID string) (roster.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetLineup")
	defer span.End()

	if teamID == "" {
		return roster.Lineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	lineup, found, err := s.rosterRepo.GetCurrentLineup(ctx, teamID)
	if err != nil {
		return roster.Lineup{}, fmt.Errorf("get current lineup team=%s: %w", teamID, err)
	}
	if !found {
		return roster.Lineup{}, fmt.Errorf("%w: team %s has no lineup", ErrNotFound, teamID)
	}
	return lineup, nil
}

// SetLineup validates and stores the new assignment, then snapshots it under
// the current league-local day.
func (s *LineupService) SetLineup(ctx context.Context, teamID string, assignments []roster.Assignment) (roster.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SetLineup")
	defer span.End()

	if teamID == "" {
		return roster.Lineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return roster.Lineup{}, fmt.Errorf("get team for lineup write: %w", err)
	}
	if !found {
		return roster.Lineup{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	normalized, err := normalizeAssignments(assignments)
	if err != nil {
		return roster.Lineup{}, err
	}

	now := s.now().UTC()
	lineup := roster.Lineup{
		TeamID:      teamID,
		Assignments: normalized,
		UpdatedAt:   now,
	}
	if err := s.rosterRepo.UpsertCurrentLineup(ctx, lineup); err != nil {
		return roster.Lineup{}, fmt.Errorf("upsert lineup team=%s: %w", teamID, err)
	}

	today := gameday.FromTime(s.now(), s.leagueLocation(ctx, t.LeagueID))
	snapshot := roster.Snapshot{
		TeamID:      teamID,
		Date:        today,
		Assignments: normalized,
		CapturedAt:  now,
	}
	if err := s.rosterRepo.SaveSnapshot(ctx, snapshot); err != nil {
		// The live lineup is saved; only the frozen record for today is at
		// risk, which the next write will retake.
		s.logger.WarnContext(ctx, "save lineup snapshot failed",
			"team_id", teamID,
			"date", today.String(),
			"error", err,
		)
	}

	return lineup, nil
}

func (s *LineupService) leagueLocation(ctx context.Context, leagueID string) *time.Location {
	lg, found, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil || !found {
		return time.UTC
	}
	return lg.Location()
}

func normalizeAssignments(assignments []roster.Assignment) ([]roster.Assignment, error) {
	if len(assignments) == 0 {
		return nil, fmt.Errorf("%w: at least one assignment is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(assignments))
	out := make([]roster.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.PlayerID == "" {
			return nil, fmt.Errorf("%w: assignment is missing a player id", ErrInvalidInput)
		}
		if _, dup := seen[a.PlayerID]; dup {
			return nil, fmt.Errorf("%w: player %s assigned twice", ErrInvalidInput, a.PlayerID)
		}
		seen[a.PlayerID] = struct{}{}

		if !roster.IsValidSlot(a.Slot) {
			return nil, fmt.Errorf("%w: unknown slot %q for player %s", ErrInvalidInput, a.Slot, a.PlayerID)
		}
		if !roster.IsValidPosition(a.Position) {
			return nil, fmt.Errorf("%w: unknown position %q for player %s", ErrInvalidInput, a.Position, a.PlayerID)
		}

		out = append(out, roster.Assignment{
			PlayerID: a.PlayerID,
			Position: roster.NormalizePosition(a.Position),
			Slot:     roster.NormalizeSlot(a.Slot),
		})
	}
	return out, nil
}
