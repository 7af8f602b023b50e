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

// RosterSource identifies which store a resolution came from.
type RosterSource string

const (
	// SourceFrozen means the immutable snapshot for the requested past day.
	SourceFrozen RosterSource = "frozen"
	// SourceLive means the team's current lineup (today or a future day).
	SourceLive RosterSource = "live"
	// SourceFrozenMissing means a past day with no saved snapshot: the team
	// fielded an empty lineup. Never backfilled from the current lineup.
	SourceFrozenMissing RosterSource = "frozen-missing"
)

// RosterResolution is the outcome of one resolve pass for a (team, date).
type RosterResolution struct {
	TeamID string
	Date   gameday.Date
	Source RosterSource
	Active []roster.Assignment
}

// RosterResolver decides, once per (team, date), whether the active lineup
// comes from the frozen daily snapshot or the live current lineup. Past days
// read the snapshot exclusively; today and future days read the current
// lineup, including today when a snapshot already exists, because today's
// lineup may still change before its games complete.
type RosterResolver struct {
	rosterRepo roster.Repository
	teamRepo   team.Repository
	leagueRepo league.Repository
	now        func() time.Time
	logger     *logging.Logger
}

func NewRosterResolver(
	rosterRepo roster.Repository,
	teamRepo team.Repository,
	leagueRepo league.Repository,
	logger *logging.Logger,
) *RosterResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterResolver{
		rosterRepo: rosterRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		now:        time.Now,
		logger:     logger,
	}
}

func (r *RosterResolver) Resolve(ctx context.Context, teamID string, date gameday.Date) (RosterResolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterResolver.Resolve")
	defer span.End()

	if teamID == "" {
		return RosterResolution{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return RosterResolution{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	today, err := r.today(ctx, teamID)
	if err != nil {
		return RosterResolution{}, err
	}

	if date.Before(today) {
		return r.resolveFrozen(ctx, teamID, date)
	}
	return r.resolveLive(ctx, teamID, date)
}

// today computes the current calendar day in the reference timezone of the
// team's league.
func (r *RosterResolver) today(ctx context.Context, teamID string) (gameday.Date, error) {
	t, found, err := r.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return "", fmt.Errorf("get team for roster resolve: %w", err)
	}
	if !found {
		return "", fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	loc := time.UTC
	if lg, found, err := r.leagueRepo.GetByID(ctx, t.LeagueID); err != nil {
		return "", fmt.Errorf("get league for roster resolve: %w", err)
	} else if found {
		loc = lg.Location()
	}

	return gameday.FromTime(r.now(), loc), nil
}

func (r *RosterResolver) resolveFrozen(ctx context.Context, teamID string, date gameday.Date) (RosterResolution, error) {
	snapshot, found, err := r.rosterRepo.GetSnapshot(ctx, teamID, date)
	if err != nil {
		return RosterResolution{}, fmt.Errorf("get roster snapshot team=%s date=%s: %w", teamID, date, err)
	}
	if !found {
		// Data-quality warning, not an error: the day is frozen and the
		// aggregator surfaces a zero score rather than fabricating one.
		r.logger.WarnContext(ctx, "roster snapshot missing for frozen day",
			"team_id", teamID,
			"date", date.String(),
		)
		return RosterResolution{
			TeamID: teamID,
			Date:   date,
			Source: SourceFrozenMissing,
			Active: []roster.Assignment{},
		}, nil
	}

	return RosterResolution{
		TeamID: teamID,
		Date:   date,
		Source: SourceFrozen,
		Active: roster.Active(snapshot.Assignments),
	}, nil
}

func (r *RosterResolver) resolveLive(ctx context.Context, teamID string, date gameday.Date) (RosterResolution, error) {
	lineup, found, err := r.rosterRepo.GetCurrentLineup(ctx, teamID)
	if err != nil {
		return RosterResolution{}, fmt.Errorf("get current lineup team=%s: %w", teamID, err)
	}

	active := []roster.Assignment{}
	if found {
		active = roster.Active(lineup.Assignments)
	}

	return RosterResolution{
		TeamID: teamID,
		Date:   date,
		Source: SourceLive,
		Active: active,
	}, nil
}
