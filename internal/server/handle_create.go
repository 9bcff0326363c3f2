package server

import (
	"net/http"

	"github.com/playduel/centum/internal/centum"
	"github.com/playduel/centum/internal/engine"
)

type CreateSessionRequest struct {
	LobbyMode       string `json:"lobbyMode"`
	InvitedPlayerID string `json:"invitedPlayerId,omitempty"`
}

func handleCreateSession(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap, err := eng.CreateSession(r.Context(), playerID(r),
			centum.LobbyMode(req.LobbyMode), req.InvitedPlayerID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, snap)
	}
}
