package storage

import (
	"context"

	"github.com/nlebedev/chardraft/internal/model"
)

// Store defines the interface for data persistence
type Store interface {
	// Draft operations
	SaveDraft(ctx context.Context, draft *model.Draft) error
	GetDraft(ctx context.Context, id model.DraftID) (*model.Draft, error)
	GetDraftByName(ctx context.Context, name string) (*model.Draft, error)
	ListDrafts(ctx context.Context) ([]*model.Draft, error)
	DeleteDraft(ctx context.Context, id model.DraftID) error

	// Roster operations. The full player list of a draft is saved and
	// loaded as one unit: it is the single source of truth after every
	// mutating action.
	SavePlayers(ctx context.Context, draftID model.DraftID, players []model.Player) error
	LoadPlayers(ctx context.Context, draftID model.DraftID) ([]model.Player, error)
	DeletePlayers(ctx context.Context, draftID model.DraftID) error
}
