package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pondside/fantasy-hockey/internal/domain/roster"
	"github.com/pondside/fantasy-hockey/internal/usecase"
)

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	lineup, err := h.lineupService.GetLineup(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, lineup))
}

func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLineup")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req lineupUpsertRequest
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

	assignments := make([]roster.Assignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, roster.Assignment{
			PlayerID: a.PlayerID,
			Position: a.Position,
			Slot:     a.Slot,
		})
	}

	lineup, err := h.lineupService.SetLineup(ctx, teamID, assignments)
	if err != nil {
		h.logger.WarnContext(ctx, "save lineup failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, lineup))
}

type lineupUpsertRequest struct {
	Assignments []assignmentDTO `json:"assignments" validate:"required,min=1,dive"`
}

type assignmentDTO struct {
	PlayerID string `json:"playerId" validate:"required"`
	Position string `json:"position" validate:"required"`
	Slot     string `json:"slot" validate:"required"`
}

type lineupDTO struct {
	TeamID      string          `json:"teamId"`
	Assignments []assignmentDTO `json:"assignments"`
	UpdatedAt   string          `json:"updatedAt"`
}

func lineupToDTO(ctx context.Context, lineup roster.Lineup) lineupDTO {
	ctx, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	assignments := make([]assignmentDTO, 0, len(lineup.Assignments))
	for _, a := range lineup.Assignments {
		assignments = append(assignments, assignmentDTO{
			PlayerID: a.PlayerID,
			Position: a.Position,
			Slot:     a.Slot,
		})
	}

	return lineupDTO{
		TeamID:      lineup.TeamID,
		Assignments: assignments,
		UpdatedAt:   lineup.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
