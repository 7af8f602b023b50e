package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/scoring"
	"github.com/pondside/fantasy-hockey/internal/usecase"
)

func (h *Handler) GetMatchupScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchupScore")
	defer span.End()

	matchupID := strings.TrimSpace(r.PathValue("matchupID"))
	score, err := h.matchupService.GetMatchupScore(ctx, matchupID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchup score failed", "matchup_id", matchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupScoreToDTO(ctx, score))
}

func (h *Handler) GetDailyScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDailyScore")
	defer span.End()

	matchupID := strings.TrimSpace(r.PathValue("matchupID"))
	teamID := strings.TrimSpace(r.PathValue("teamID"))
	date, err := gameday.Parse(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	score, err := h.scoreService.GetOrCompute(ctx, matchupID, teamID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "get daily score failed",
			"matchup_id", matchupID, "team_id", teamID, "date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dailyScoreToDTO(ctx, score))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rows, err := h.matchupService.ListStandings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingRowToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type dailyScoreDTO struct {
	MatchupID string            `json:"matchupId"`
	TeamID    string            `json:"teamId"`
	Date      string            `json:"date"`
	Score     float64           `json:"score"`
	Breakdown []contributionDTO `json:"breakdown"`
	Source    string            `json:"source"`
	IsFinal   bool              `json:"isFinal"`
	FromCache bool              `json:"fromCache"`
}

type contributionDTO struct {
	PlayerID string  `json:"playerId"`
	Position string  `json:"position"`
	Goalie   bool    `json:"goalie"`
	Points   float64 `json:"points"`
	HasStats bool    `json:"hasStats"`
}

type matchupScoreDTO struct {
	MatchupID   string       `json:"matchupId"`
	LeagueID    string       `json:"leagueId"`
	Week        int          `json:"week"`
	Status      string       `json:"status"`
	Home        teamTotalDTO `json:"home"`
	Away        teamTotalDTO `json:"away"`
	Persisted   bool         `json:"persisted"`
	FinalizedAt string       `json:"finalizedAt,omitempty"`
}

type teamTotalDTO struct {
	TeamID   string        `json:"teamId"`
	Total    float64       `json:"total"`
	Days     []dayScoreDTO `json:"days"`
	Degraded bool          `json:"degraded"`
}

type dayScoreDTO struct {
	Date      string  `json:"date"`
	Score     float64 `json:"score"`
	IsFinal   bool    `json:"isFinal"`
	FromCache bool    `json:"fromCache"`
	Degraded  bool    `json:"degraded"`
}

type standingRowDTO struct {
	Rank          int     `json:"rank"`
	TeamID        string  `json:"teamId"`
	TeamName      string  `json:"teamName"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

func dailyScoreToDTO(ctx context.Context, score usecase.DailyScore) dailyScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.dailyScoreToDTO")
	defer span.End()

	return dailyScoreDTO{
		MatchupID: score.MatchupID,
		TeamID:    score.TeamID,
		Date:      score.Date.String(),
		Score:     score.Score,
		Breakdown: breakdownToDTO(ctx, score.Breakdown),
		Source:    string(score.Source),
		IsFinal:   score.IsFinal,
		FromCache: score.FromCache,
	}
}

func breakdownToDTO(ctx context.Context, breakdown []scoring.PlayerContribution) []contributionDTO {
	ctx, span := startSpan(ctx, "httpapi.breakdownToDTO")
	defer span.End()

	items := make([]contributionDTO, 0, len(breakdown))
	for _, c := range breakdown {
		items = append(items, contributionDTO{
			PlayerID: c.PlayerID,
			Position: c.Position,
			Goalie:   c.Goalie,
			Points:   c.Points,
			HasStats: c.HasStats,
		})
	}
	return items
}

func matchupScoreToDTO(ctx context.Context, score usecase.MatchupScore) matchupScoreDTO {
	ctx, span := startSpan(ctx, "httpapi.matchupScoreToDTO")
	defer span.End()

	out := matchupScoreDTO{
		MatchupID: score.MatchupID,
		LeagueID:  score.LeagueID,
		Week:      score.Week,
		Status:    score.Status,
		Home:      teamTotalToDTO(ctx, score.Home),
		Away:      teamTotalToDTO(ctx, score.Away),
		Persisted: score.Persisted,
	}
	if score.FinalizedAt != nil {
		out.FinalizedAt = score.FinalizedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func teamTotalToDTO(ctx context.Context, total usecase.TeamMatchupTotal) teamTotalDTO {
	ctx, span := startSpan(ctx, "httpapi.teamTotalToDTO")
	defer span.End()

	days := make([]dayScoreDTO, 0, len(total.Days))
	for _, day := range total.Days {
		days = append(days, dayScoreDTO{
			Date:      day.Date.String(),
			Score:     day.Score,
			IsFinal:   day.IsFinal,
			FromCache: day.FromCache,
			Degraded:  day.Degraded,
		})
	}

	return teamTotalDTO{
		TeamID:   total.TeamID,
		Total:    total.Total,
		Days:     days,
		Degraded: total.Degraded,
	}
}

func standingRowToDTO(ctx context.Context, row usecase.StandingRow) standingRowDTO {
	ctx, span := startSpan(ctx, "httpapi.standingRowToDTO")
	defer span.End()

	return standingRowDTO{
		Rank:          row.Rank,
		TeamID:        row.TeamID,
		TeamName:      row.TeamName,
		Wins:          row.Wins,
		Losses:        row.Losses,
		Ties:          row.Ties,
		PointsFor:     row.PointsFor,
		PointsAgainst: row.PointsAgainst,
	}
}
