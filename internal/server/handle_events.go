package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playduel/centum/internal/engine"
)

// handleEvents streams a session's state changes over SSE. The first
// frame is the current snapshot when the session exists; the stream ends
// when the client disconnects or the session finishes.
func handleEvents(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		sub := eng.Subscribe(chi.URLParam(r, "id"))
		defer sub.Close()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		events := make(chan []byte)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				snap, err := sub.Next(r.Context())
				if err != nil {
					return
				}
				data, err := json.Marshal(snap)
				if err != nil {
					return
				}
				select {
				case events <- data:
				case <-r.Context().Done():
					return
				}
			}
		}()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-done:
				return
			case data := <-events:
				fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
