package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse reports the status of each backend dependency.
type HealthResponse map[string]HealthResult

type HealthResult struct {
	Status string `json:"status"`
}

func handleHealth(logger *slog.Logger, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := HealthResponse{
			"sqlite": {Status: "ok"},
		}
		status := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			checks["sqlite"] = HealthResult{Status: "error"}
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, checks)
	}
}
