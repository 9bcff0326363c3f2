package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playduel/centum/internal/engine"
)

// handleWS streams the same session events as the SSE endpoint over a
// WebSocket, one JSON snapshot per text message.
func handleWS(logger *slog.Logger, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		sub := eng.Subscribe(chi.URLParam(r, "id"))
		defer sub.Close()

		ctx := r.Context()
		for {
			snap, err := sub.Next(ctx)
			if errors.Is(err, engine.ErrSubscriptionClosed) {
				conn.Close(websocket.StatusNormalClosure, "session finished")
				return
			}
			if err != nil {
				return
			}

			if err := wsjson.Write(ctx, conn, snap); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}
