// Package drafts manages draft session records: creation, listing, and
// password-checked deletion. Draft passwords, like player credentials,
// are opaque strings compared for equality; this tool coordinates
// casual drafts and is deliberately not a security boundary.
package drafts

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nlebedev/chardraft/internal/catalog"
	"github.com/nlebedev/chardraft/internal/dependencies/clock"
	"github.com/nlebedev/chardraft/internal/model"
	"github.com/nlebedev/chardraft/internal/storage"
)

// Service manages draft records
type Service struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a drafts service
func New(store storage.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: logger.With(slog.String("component", "drafts")),
	}
}

// Create registers a new draft with a unique name
func (s *Service) Create(ctx context.Context, name, password string, gameID model.GameID, params model.DraftParams) (*model.Draft, error) {
	if !catalog.KnownGame(gameID) {
		return nil, model.ErrUnknownGame
	}

	_, err := s.store.GetDraftByName(ctx, name)
	if err == nil {
		return nil, model.ErrDraftExists
	}
	if !errors.Is(err, model.ErrDraftNotFound) {
		return nil, err
	}

	now := s.clock.Now()
	draft := &model.Draft{
		ID:        model.DraftID(uuid.NewString()),
		Name:      name,
		Password:  password,
		GameID:    gameID,
		Params:    params,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.SaveDraft(ctx, draft); err != nil {
		s.logger.Error("failed to save draft",
			slog.String("draft_id", string(draft.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("draft created",
		slog.String("draft_id", string(draft.ID)),
		slog.String("name", name),
		slog.String("game_id", string(gameID)),
	)
	return draft, nil
}

// Get retrieves a draft by id
func (s *Service) Get(ctx context.Context, id model.DraftID) (*model.Draft, error) {
	return s.store.GetDraft(ctx, id)
}

// List returns all known drafts
func (s *Service) List(ctx context.Context) ([]*model.Draft, error) {
	return s.store.ListDrafts(ctx)
}

// Delete removes a draft and its roster after checking the password
func (s *Service) Delete(ctx context.Context, id model.DraftID, password string) error {
	draft, err := s.store.GetDraft(ctx, id)
	if err != nil {
		return err
	}
	if draft.Password != password {
		return model.ErrWrongPassword
	}

	if err := s.store.DeletePlayers(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteDraft(ctx, id); err != nil {
		return err
	}

	s.logger.Info("draft deleted", slog.String("draft_id", string(id)))
	return nil
}
