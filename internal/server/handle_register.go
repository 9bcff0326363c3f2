package server

import (
	"errors"
	"net/http"
	"strings"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AuthResponse struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

func handleRegister(players *PlayerStore, auth *TokenAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "name and password are required")
			return
		}

		p, err := players.Create(r.Context(), req.Name, req.Password)
		if errors.Is(err, ErrNameTaken) {
			writeError(w, http.StatusConflict, "player name already taken")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		token, err := auth.Issue(p)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{
			PlayerID: p.ID,
			Name:     p.Name,
			Token:    token,
		})
	}
}
