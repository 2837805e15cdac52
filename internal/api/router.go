package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nlebedev/chardraft/internal/api/handler"
	"github.com/nlebedev/chardraft/internal/api/middleware"
	"github.com/nlebedev/chardraft/internal/broadcast"
	"github.com/nlebedev/chardraft/internal/drafts"
	"github.com/nlebedev/chardraft/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Drafts      *drafts.Service
	Store       storage.Store
	Broadcaster broadcast.Broadcaster
	RateLimiter *middleware.IPRateLimiter
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	h := handler.New(cfg.Drafts, cfg.Store, cfg.Broadcaster, cfg.Logger)

	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	if cfg.RateLimiter != nil {
		api.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	// Draft lifecycle
	api.HandleFunc("/drafts", h.CreateDraft).Methods(http.MethodPost)
	api.HandleFunc("/drafts", h.ListDrafts).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftID}", h.GetDraft).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftID}", h.DeleteDraft).Methods(http.MethodDelete)

	// Roster state
	api.HandleFunc("/drafts/{draftID}/players", h.GetPlayers).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{draftID}/players", h.SavePlayers).Methods(http.MethodPut)
	api.HandleFunc("/drafts/{draftID}/events", h.StreamEvents).Methods(http.MethodGet)

	// Static character catalogs
	api.HandleFunc("/games/{gameID}/characters", h.GetCharacters).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
