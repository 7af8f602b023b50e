package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/usecase"
)

func (h *Handler) GetScoringSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringSettings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	settings, err := h.settingsService.GetSettings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoring settings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(ctx, settings))
}

func (h *Handler) UpdateScoringSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScoringSettings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req scoring.Weights
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(ctx, leagueID, req)
	if err != nil {
		h.logger.WarnContext(ctx, "update scoring settings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(ctx, settings))
}

type settingsDTO struct {
	LeagueID  string          `json:"leagueId"`
	Version   int             `json:"version"`
	Weights   scoring.Weights `json:"weights"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

func settingsToDTO(ctx context.Context, settings scoring.Settings) settingsDTO {
	ctx, span := startSpan(ctx, "httpapi.settingsToDTO")
	defer span.End()

	out := settingsDTO{
		LeagueID: settings.LeagueID,
		Version:  settings.Version,
		Weights:  settings.Weights,
	}
	if !settings.UpdatedAt.IsZero() {
		out.UpdatedAt = settings.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}
