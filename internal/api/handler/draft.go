package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nlebedev/chardraft/internal/api/apierr"
	"github.com/nlebedev/chardraft/internal/api/request"
	"github.com/nlebedev/chardraft/internal/api/response"
	"github.com/nlebedev/chardraft/internal/broadcast"
	"github.com/nlebedev/chardraft/internal/catalog"
	"github.com/nlebedev/chardraft/internal/drafts"
	"github.com/nlebedev/chardraft/internal/model"
	"github.com/nlebedev/chardraft/internal/storage"
)

// Handler serves the draft HTTP API
type Handler struct {
	drafts      *drafts.Service
	store       storage.Store
	broadcaster broadcast.Broadcaster
	logger      *slog.Logger
}

// New creates an API handler
func New(draftsService *drafts.Service, store storage.Store, broadcaster broadcast.Broadcaster, logger *slog.Logger) *Handler {
	return &Handler{
		drafts:      draftsService,
		store:       store,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("component", "api")),
	}
}

// draftView is a Draft without its password
type draftView struct {
	ID        model.DraftID     `json:"id"`
	Name      string            `json:"name"`
	GameID    model.GameID      `json:"game_id"`
	Params    model.DraftParams `json:"params"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

func toDraftView(d *model.Draft) draftView {
	return draftView{
		ID:        d.ID,
		Name:      d.Name,
		GameID:    d.GameID,
		Params:    d.Params,
		CreatedAt: d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: d.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateDraft handles POST /api/v1/drafts
func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.BadRequest("invalid request body"))
		return
	}
	if req.Name == "" {
		apierr.WriteError(w, apierr.BadRequest("name is required"))
		return
	}

	draft, err := h.drafts.Create(r.Context(), req.Name, req.Password, req.GameID, req.Params)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toDraftView(draft))
}

// ListDrafts handles GET /api/v1/drafts
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	list, err := h.drafts.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	views := make([]draftView, 0, len(list))
	for _, d := range list {
		views = append(views, toDraftView(d))
	}
	response.JSON(w, http.StatusOK, views)
}

// GetDraft handles GET /api/v1/drafts/{draftID}
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.drafts.Get(r.Context(), draftID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toDraftView(draft))
}

// DeleteDraft handles DELETE /api/v1/drafts/{draftID}
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.BadRequest("invalid request body"))
		return
	}

	if err := h.drafts.Delete(r.Context(), draftID(r), req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// GetCharacters handles GET /api/v1/games/{gameID}/characters
func (h *Handler) GetCharacters(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["gameID"])
	if !catalog.KnownGame(gameID) {
		apierr.WriteError(w, model.ErrUnknownGame)
		return
	}
	response.JSON(w, http.StatusOK, catalog.CharactersFor(gameID))
}

func draftID(r *http.Request) model.DraftID {
	return model.DraftID(mux.Vars(r)["draftID"])
}
