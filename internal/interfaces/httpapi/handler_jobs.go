package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pondside/fantasy-hockey/internal/usecase"
)

func (h *Handler) RunBackfillScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfillScoresJob")
	defer span.End()

	var req backfillScoresRequest
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

	report, err := h.backfillService.Run(ctx, req.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "run backfill scores job failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, backfillReportToDTO(ctx, report))
}

type backfillScoresRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
}

type backfillReportDTO struct {
	RunID    string `json:"runId"`
	LeagueID string `json:"leagueId"`
	Days     int    `json:"days"`
	Computed int    `json:"computed"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
	TookMS   int64  `json:"tookMs"`
}

func backfillReportToDTO(ctx context.Context, report usecase.BackfillReport) backfillReportDTO {
	ctx, span := startSpan(ctx, "httpapi.backfillReportToDTO")
	defer span.End()

	return backfillReportDTO{
		RunID:    report.RunID,
		LeagueID: report.LeagueID,
		Days:     report.Days,
		Computed: report.Computed,
		Skipped:  report.Skipped,
		Failed:   report.Failed,
		TookMS:   report.Took.Milliseconds(),
	}
}
