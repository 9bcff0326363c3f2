package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playduel/centum/internal/centum"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, centum.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, centum.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, centum.ErrLobbyFull):
		writeError(w, http.StatusConflict, "lobby is full")
	case errors.Is(err, centum.ErrNotActive):
		writeError(w, http.StatusConflict, "session is not active")
	case errors.Is(err, centum.ErrInvalidMove):
		writeError(w, http.StatusBadRequest, "move value must be between 1 and 10")
	case errors.Is(err, centum.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
