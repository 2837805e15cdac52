package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nlebedev/chardraft/internal/api/apierr"
	"github.com/nlebedev/chardraft/internal/api/request"
	"github.com/nlebedev/chardraft/internal/api/response"
	"github.com/nlebedev/chardraft/internal/broadcast"
)

// GetPlayers handles GET /api/v1/drafts/{draftID}/players
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	id := draftID(r)
	if _, err := h.drafts.Get(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	players, err := h.store.LoadPlayers(r.Context(), id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, players)
}

// SavePlayers handles PUT /api/v1/drafts/{draftID}/players.
//
// The submitted roster replaces the stored one wholesale; the server
// does not arbitrate between concurrent writers. Sessions resolve
// races themselves by merging the relayed old/new pair, so the update
// is published before the write and delivered even if persistence
// later fails.
func (h *Handler) SavePlayers(w http.ResponseWriter, r *http.Request) {
	id := draftID(r)
	if _, err := h.drafts.Get(r.Context(), id); err != nil {
		apierr.WriteError(w, err)
		return
	}

	var req request.SavePlayersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.BadRequest("invalid request body"))
		return
	}
	if req.New == nil {
		apierr.WriteError(w, apierr.BadRequest("new roster is required"))
		return
	}

	if err := h.broadcaster.Publish(r.Context(), id, broadcast.Update{Old: req.Old, New: req.New}); err != nil {
		h.logger.Error("failed to publish roster update",
			slog.String("draft_id", string(id)),
			slog.String("error", err.Error()),
		)
		apierr.WriteError(w, err)
		return
	}

	if err := h.store.SavePlayers(r.Context(), id, req.New); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}
