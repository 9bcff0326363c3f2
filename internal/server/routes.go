package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playduel/centum/internal/engine"
)

func addRoutes(r chi.Router, logger *slog.Logger, eng *engine.Engine, players *PlayerStore, auth *TokenAuth, db *sql.DB) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Centum API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Identity — open endpoints issuing bearer tokens.
	r.Post("/api/players", handleRegister(players, auth))
	r.Post("/api/login", handleLogin(players, auth))

	// Sessions — everything below resolves the caller to a player ID.
	r.Route("/api/sessions", func(r chi.Router) {
		r.Use(requirePlayer(players, auth))
		r.Post("/", handleCreateSession(eng))
		r.Get("/{id}", handleSnapshot(eng))
		r.Post("/{id}/join", handleJoinSession(eng))
		r.Post("/{id}/move", handleMove(eng))
		r.Get("/{id}/events", handleEvents(eng))
		r.Get("/{id}/ws", handleWS(logger, eng))
	})
}
