package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playduel/centum/internal/engine"
)

type MoveRequest struct {
	Value int `json:"value"`
}

func handleMove(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap, err := eng.ApplyMove(r.Context(), chi.URLParam(r, "id"), playerID(r), req.Value)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}
