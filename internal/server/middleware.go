package server

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const ctxKeyPlayerID ctxKey = iota

// requirePlayer resolves the caller's identity before the handler runs.
// Tokens come from the Authorization header, or from a token query
// parameter for the streaming endpoints where EventSource and browser
// WebSocket clients cannot set headers.
func requirePlayer(players *PlayerStore, auth *TokenAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			playerID, err := auth.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}
			if _, err := players.Get(r.Context(), playerID); err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPlayerID, playerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func playerID(r *http.Request) string {
	return r.Context().Value(ctxKeyPlayerID).(string)
}
