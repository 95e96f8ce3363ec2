package httpapi

import (
	"net/http"

	"github.com/riskibarqy/film-grading/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, m *metrics.Metrics) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/standardize", handler.StandardizePlays)
	mux.HandleFunc("GET /v1/external-games/{externalGameID}", handler.GetExternalGame)
	mux.HandleFunc("GET /v1/external-games/{externalGameID}/validation", handler.ValidateExternalGame)
	mux.HandleFunc("GET /v1/external-games/{externalGameID}/team-mapping", handler.GetTeamMapping)
	mux.HandleFunc("GET /v1/games/{gameID}/plays", handler.ListGamePlays)
}

func registerImportRoutes(mux *http.ServeMux, handler *Handler, importToken string) {
	guard := func(fn http.HandlerFunc) http.Handler {
		return RequireImportToken(importToken, fn)
	}
	mux.Handle("POST /v1/external-games", guard(handler.CreateExternalGame))
	mux.Handle("POST /v1/external-games/{externalGameID}/plays", guard(handler.ImportExternalPlays))
	mux.Handle("POST /v1/external-games/{externalGameID}/import", guard(handler.ImportGame))
	mux.Handle("POST /v1/providers/{source}/games/{gameRef}/sync", guard(handler.SyncProviderGame))
	mux.Handle("POST /v1/providers/{source}/sync", guard(handler.SyncProviderBatch))
}
