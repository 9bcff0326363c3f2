package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playduel/centum/internal/engine"
)

func handleJoinSession(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := eng.JoinSession(r.Context(), chi.URLParam(r, "id"), playerID(r))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}
