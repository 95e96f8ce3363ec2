package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/film-grading/internal/usecase"
)

// ImportGame maps a stored external game into internal plays. With no team
// ids in the body the teams are resolved by name.
func (h *Handler) ImportGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportGame")
	defer span.End()

	var req importGameRequest
	if err := h.decodeAndValidate(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	externalGameID := r.PathValue("externalGameID")
	var (
		summary usecase.MapGameSummary
		err     error
	)
	if strings.TrimSpace(req.TeamID) == "" && strings.TrimSpace(req.OpponentID) == "" {
		summary, err = h.importService.AutoMapExternalGame(ctx, externalGameID)
	} else {
		summary, err = h.importService.MapExternalGame(ctx, usecase.MapGameInput{
			ExternalGameID: externalGameID,
			TeamID:         req.TeamID,
			OpponentID:     req.OpponentID,
		})
	}
	if err != nil {
		h.logFailure(ctx, "import game failed", err, "external_game_id", externalGameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) SyncProviderGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncProviderGame")
	defer span.End()

	source, ref := r.PathValue("source"), r.PathValue("gameRef")
	result, err := h.importService.SyncFromProvider(ctx, source, ref)
	if err != nil {
		h.logFailure(ctx, "provider sync failed", err, "source", source, "ref", ref)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncDTO{
		Game:  externalGameToDTO(result.Game, false),
		Plays: result.Plays,
	})
}

func (h *Handler) SyncProviderBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncProviderBatch")
	defer span.End()

	var req batchSyncRequest
	if err := h.decodeAndValidate(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	source := r.PathValue("source")
	result, err := h.importService.SyncBatchFromProvider(ctx, usecase.BatchSyncInput{
		Source:   source,
		GameRefs: req.GameRefs,
		Workers:  req.Workers,
	})
	if err != nil {
		h.logFailure(ctx, "provider batch sync failed", err, "source", source)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) StandardizePlays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StandardizePlays")
	defer span.End()

	var req standardizeRequest
	if err := h.decodeAndValidate(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	plays, err := h.importService.StandardizePreview(ctx, req.Source, req.Plays)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, plays)
}

func (h *Handler) ListGamePlays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamePlays")
	defer span.End()

	items, err := h.importService.ListGamePlays(ctx, r.PathValue("gameID"))
	if err != nil {
		h.logFailure(ctx, "list game plays failed", err, "game_id", r.PathValue("gameID"))
		writeError(ctx, w, err)
		return
	}

	out := make([]playDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
