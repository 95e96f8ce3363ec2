package httpapi

import (
	"net/http"

	"github.com/riskibarqy/film-grading/internal/usecase"
)

func (h *Handler) CreateExternalGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateExternalGame")
	defer span.End()

	var req createExternalGameRequest
	if err := h.decodeAndValidate(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	game, err := h.importService.ImportExternalGame(ctx, req.Source, req.Game)
	if err != nil {
		h.logFailure(ctx, "import external game failed", err, "source", req.Source)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, externalGameToDTO(game, false))
}

func (h *Handler) GetExternalGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetExternalGame")
	defer span.End()

	game, err := h.importService.GetExternalGame(ctx, r.PathValue("externalGameID"))
	if err != nil {
		h.logFailure(ctx, "get external game failed", err, "external_game_id", r.PathValue("externalGameID"))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, externalGameToDTO(game, r.URL.Query().Get("raw") == "true"))
}

func (h *Handler) ImportExternalPlays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportExternalPlays")
	defer span.End()

	var req importPlaysRequest
	if err := h.decodeAndValidate(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	externalGameID := r.PathValue("externalGameID")
	summary, err := h.importService.ImportExternalPlays(ctx, usecase.ImportPlaysInput{
		ExternalGameID: externalGameID,
		Source:         req.Source,
		Plays:          req.Plays,
	})
	if err != nil {
		h.logFailure(ctx, "import external plays failed", err, "external_game_id", externalGameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) ValidateExternalGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateExternalGame")
	defer span.End()

	report, err := h.validationService.ValidateExternalGame(ctx, r.PathValue("externalGameID"))
	if err != nil {
		h.logFailure(ctx, "validate external game failed", err, "external_game_id", r.PathValue("externalGameID"))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
