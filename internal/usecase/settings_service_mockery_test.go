package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/pondside/fantasy-hockey/internal/domain/league"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	leaguemock "github.com/pondside/fantasy-hockey/internal/mocks/domain/league"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
)

type stubInvalidator struct {
	calls int
}

func (s *stubInvalidator) InvalidateLeagueScores(_ context.Context, _ string) error {
	s.calls++
	return nil
}

func TestSettingsService_UpdateSettings_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	settingsRepo := newStubSettingsRepo()
	invalidator := &stubInvalidator{}

	svc := NewSettingsService(settingsRepo, leagueRepo, invalidator, logging.NewNop())
	leagueID := "glhl-2023-24"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), leagueID).
		Return(league.League{ID: leagueID, Name: "Great Lakes Hockey League"}, true, nil).
		Once()

	got, err := svc.UpdateSettings(ctx, leagueID, scoring.DefaultWeights())
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("unexpected settings version: got=%d want=2", got.Version)
	}
	if got.LeagueID != leagueID {
		t.Fatalf("unexpected league id: got=%s want=%s", got.LeagueID, leagueID)
	}
	if invalidator.calls != 1 {
		t.Fatalf("expected one invalidation sweep, got %d", invalidator.calls)
	}
}

func TestSettingsService_UpdateSettings_LeagueNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	settingsRepo := newStubSettingsRepo()
	invalidator := &stubInvalidator{}

	svc := NewSettingsService(settingsRepo, leagueRepo, invalidator, logging.NewNop())
	leagueID := "missing-league"

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), leagueID).
		Return(league.League{}, false, nil).
		Once()

	_, err := svc.UpdateSettings(ctx, leagueID, scoring.DefaultWeights())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
