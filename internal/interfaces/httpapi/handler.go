package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pondside/fantasy-hockey/internal/platform/logging"
	"github.com/pondside/fantasy-hockey/internal/usecase"
)

type Handler struct {
	scoreService    *usecase.ScoreService
	matchupService  *usecase.MatchupService
	lineupService   *usecase.LineupService
	settingsService *usecase.SettingsService
	backfillService *usecase.BackfillService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	scoreService *usecase.ScoreService,
	matchupService *usecase.MatchupService,
	lineupService *usecase.LineupService,
	settingsService *usecase.SettingsService,
	backfillService *usecase.BackfillService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoreService:    scoreService,
		matchupService:  matchupService,
		lineupService:   lineupService,
		settingsService: settingsService,
		backfillService: backfillService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
