package memory

import (
	"context"
	"sync"

	"github.com/nlebedev/chardraft/internal/model"
	"github.com/nlebedev/chardraft/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	drafts    map[model.DraftID]*model.Draft
	nameIndex map[string]model.DraftID
	rosters   map[model.DraftID][]model.Player
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		drafts:    make(map[model.DraftID]*model.Draft),
		nameIndex: make(map[string]model.DraftID),
		rosters:   make(map[model.DraftID][]model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Draft operations

func (s *Storage) SaveDraft(ctx context.Context, draft *model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *draft
	s.drafts[draft.ID] = &copied
	s.nameIndex[draft.Name] = draft.ID
	return nil
}

func (s *Storage) GetDraft(ctx context.Context, id model.DraftID) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, model.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *Storage) GetDraftByName(ctx context.Context, name string) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrDraftNotFound
	}
	draft, ok := s.drafts[id]
	if !ok {
		return nil, model.ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *Storage) ListDrafts(ctx context.Context) ([]*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Draft, 0, len(s.drafts))
	for _, draft := range s.drafts {
		copied := *draft
		out = append(out, &copied)
	}
	return out, nil
}

func (s *Storage) DeleteDraft(ctx context.Context, id model.DraftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if draft, ok := s.drafts[id]; ok {
		delete(s.nameIndex, draft.Name)
	}
	delete(s.drafts, id)
	delete(s.rosters, id)
	return nil
}

// Roster operations

func (s *Storage) SavePlayers(ctx context.Context, draftID model.DraftID, players []model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters[draftID] = model.ClonePlayers(players)
	return nil
}

func (s *Storage) LoadPlayers(ctx context.Context, draftID model.DraftID) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players, ok := s.rosters[draftID]
	if !ok {
		return []model.Player{}, nil
	}
	return model.ClonePlayers(players), nil
}

func (s *Storage) DeletePlayers(ctx context.Context, draftID model.DraftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rosters, draftID)
	return nil
}
