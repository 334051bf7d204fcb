package httpapi

import (
	"net/http"
)

func (h *Handler) ListSpecies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSpecies")
	defer span.End()

	species, err := h.pokedexService.ListSpecies(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list species failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, species)
}

func (h *Handler) ListMoves(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMoves")
	defer span.End()

	moves, err := h.pokedexService.ListMoves(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list moves failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, moves)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListItems")
	defer span.End()

	items, err := h.pokedexService.ListItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list items failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListEvolutions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvolutions")
	defer span.End()

	evolutions, err := h.pokedexService.ListEvolutions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list evolutions failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, evolutions)
}
