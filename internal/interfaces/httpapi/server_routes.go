package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/scoring-settings", handler.GetScoringSettings)
	mux.HandleFunc("PUT /v1/leagues/{leagueID}/scoring-settings", handler.UpdateScoringSettings)
	mux.HandleFunc("GET /v1/matchups/{matchupID}/score", handler.GetMatchupScore)
	mux.HandleFunc("GET /v1/matchups/{matchupID}/teams/{teamID}/days/{date}", handler.GetDailyScore)
	mux.HandleFunc("GET /v1/teams/{teamID}/lineup", handler.GetLineup)
	mux.HandleFunc("PUT /v1/teams/{teamID}/lineup", handler.SaveLineup)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/backfill-scores", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBackfillScoresJob)))
}
