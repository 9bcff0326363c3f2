package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playduel/centum/internal/engine"
)

func handleSnapshot(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := eng.GetSnapshot(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}
