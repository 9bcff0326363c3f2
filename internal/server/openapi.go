package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playduel/centum/internal/centum"
	"github.com/playduel/centum/internal/engine"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// sessionPathParams declares the {id} path parameter so the reflector can
// resolve it; operations on an {id} path are rejected without it.
type sessionPathParams struct {
	ID string `path:"id"`
}

func newOpenAPISpec() (*openapi3.Spec, error) {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Centum API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the centum race-to-100 duel.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))

	// POST /api/players
	postPlayers, _ := r.NewOperationContext(http.MethodPost, "/api/players")
	postPlayers.SetSummary("Register player")
	postPlayers.SetDescription("Registers a player and returns a bearer token.")
	postPlayers.AddReqStructure(RegisterRequest{})
	postPlayers.AddRespStructure(AuthResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postPlayers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postPlayers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))

	// POST /api/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/login")
	postLogin.SetSummary("Log in")
	postLogin.SetDescription("Re-issues a bearer token for a registered player.")
	postLogin.AddReqStructure(LoginRequest{})
	postLogin.AddRespStructure(AuthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))

	// POST /api/sessions
	postSessions, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	postSessions.SetSummary("Create session")
	postSessions.SetDescription("Creates a duel session with the caller in seat1. Requires Bearer token.")
	postSessions.AddReqStructure(CreateSessionRequest{})
	postSessions.AddRespStructure(centum.Snapshot{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSessions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSessions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))

	// GET /api/sessions/{id}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}")
	getSession.SetSummary("Get session snapshot")
	getSession.SetDescription("Returns the current external projection of a session. Requires Bearer token.")
	getSession.AddReqStructure(sessionPathParams{})
	getSession.AddRespStructure(centum.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))

	// POST /api/sessions/{id}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/join")
	postJoin.SetSummary("Join session")
	postJoin.SetDescription("Seats the caller in seat2; filling the lobby starts the countdown. Requires Bearer token.")
	postJoin.AddReqStructure(sessionPathParams{})
	postJoin.AddRespStructure(engine.JoinResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))

	// POST /api/sessions/{id}/move
	postMove, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/move")
	postMove.SetSummary("Apply move")
	postMove.SetDescription("Adds a value between 1 and 10 to the accumulator on the caller's turn. Requires Bearer token.")
	postMove.AddReqStructure(sessionPathParams{})
	postMove.AddReqStructure(MoveRequest{})
	postMove.AddRespStructure(centum.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postMove.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postMove.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postMove.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postMove.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))

	// GET /api/sessions/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of session snapshots. Pass token as query parameter.")
	getEvents.AddReqStructure(sessionPathParams{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))

	// GET /api/sessions/{id}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/ws")
	getWS.SetSummary("WebSocket event stream")
	getWS.SetDescription("WebSocket stream of session snapshots. Pass token as query parameter.")
	getWS.AddReqStructure(sessionPathParams{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))

	for _, op := range []openapi.OperationContext{
		getHealthz, postPlayers, postLogin, postSessions,
		getSession, postJoin, postMove, getEvents, getWS,
	} {
		if err := r.AddOperation(op); err != nil {
			return nil, fmt.Errorf("adding %s %s: %w", op.Method(), op.PathPattern(), err)
		}
	}

	return r.Spec, nil
}

func handleOpenAPI() http.HandlerFunc {
	spec, err := newOpenAPISpec()
	if err != nil {
		panic(fmt.Sprintf("building openapi document: %v", err))
	}
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
