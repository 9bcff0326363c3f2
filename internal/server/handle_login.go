package server

import (
	"errors"
	"net/http"
	"strings"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func handleLogin(players *PlayerStore, auth *TokenAuth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "name and password are required")
			return
		}

		p, err := players.Authenticate(r.Context(), req.Name, req.Password)
		if errors.Is(err, ErrBadCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid name or password")
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

		writeJSON(w, http.StatusOK, AuthResponse{
			PlayerID: p.ID,
			Name:     p.Name,
			Token:    token,
		})
	}
}
