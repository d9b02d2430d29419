package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedMatchRoutes(mux, handler, verifier)
	registerAuthorizedLedgerRoutes(mux, handler, verifier)
	registerAuthorizedReportRoutes(mux, handler, verifier)
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("POST /v1/teams/{teamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.CreatePlayerForTeam)))
}

func registerAuthorizedMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("GET /v1/matches/{matchID}", RequireAuth(verifier, http.HandlerFunc(handler.GetMatchDetail)))
	mux.Handle("GET /v1/matches/{matchID}/scoreboard", RequireAuth(verifier, http.HandlerFunc(handler.GetScoreboard)))
	mux.Handle("GET /v1/matches/{matchID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.ListRoster)))
	mux.Handle("POST /v1/matches/{matchID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.AddRosterEntry)))
	mux.Handle("DELETE /v1/matches/{matchID}/roster/{entryID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveRosterEntry)))
}

func registerAuthorizedLedgerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches/{matchID}/actions", RequireAuth(verifier, http.HandlerFunc(handler.ListActions)))
	mux.Handle("POST /v1/matches/{matchID}/actions", RequireAuth(verifier, http.HandlerFunc(handler.RecordAction)))
	mux.Handle("DELETE /v1/matches/{matchID}/actions/{actionID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteAction)))
	mux.Handle("GET /v1/matches/{matchID}/feed/recent", RequireAuth(verifier, http.HandlerFunc(handler.GetRecentFeed)))
	mux.Handle("GET /v1/matches/{matchID}/feed/full", RequireAuth(verifier, http.HandlerFunc(handler.GetFullLog)))
	mux.Handle("GET /v1/matches/{matchID}/shotmap", RequireAuth(verifier, http.HandlerFunc(handler.GetShotMap)))
}

func registerAuthorizedReportRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/matches/{matchID}/report", RequireAuth(verifier, http.HandlerFunc(handler.DownloadReport)))
	mux.Handle("GET /v1/matches/{matchID}/report/state", RequireAuth(verifier, http.HandlerFunc(handler.GetReportState)))
	mux.Handle("POST /v1/reports/batch", RequireAuth(verifier, http.HandlerFunc(handler.GenerateBatchReports)))
}
