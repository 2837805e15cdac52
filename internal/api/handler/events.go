package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nlebedev/chardraft/internal/api/apierr"
	"github.com/nlebedev/chardraft/internal/broadcast"
	"github.com/nlebedev/chardraft/internal/model"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing events
	eventBufferSize = 16
)

// StreamEvents handles GET /api/v1/drafts/{draftID}/events as a
// server-sent event stream of roster updates.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	id := draftID(r)
	if _, err := h.drafts.Get(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	events := make(chan broadcast.Update, eventBufferSize)
	unsubscribe, err := h.broadcaster.Subscribe(r.Context(), id, func(update broadcast.Update) {
		select {
		case events <- update:
		default:
			// Slow consumer; the next update carries the full roster
			h.logger.Warn("dropping event for slow stream",
				slog.String("draft_id", string(id)),
			)
		}
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	defer unsubscribe()

	_, _ = w.Write([]byte("event: connected\ndata: {\"status\":\"connected\"}\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case update := <-events:
			if err := writeEvent(w, id, update); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, id model.DraftID, update broadcast.Update) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: players\ndata: %s\n\n", payload)
	return err
}
