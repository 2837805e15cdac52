// Package session binds one browser-equivalent identity to a draft: it
// loads the roster, subscribes to rebroadcasts, and dispatches user
// actions through the reducer. All mutation is optimistic: the new
// roster is applied locally, broadcast, then persisted, in that order,
// and collaborator failures never roll the local state back.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nlebedev/chardraft/internal/broadcast"
	"github.com/nlebedev/chardraft/internal/catalog"
	"github.com/nlebedev/chardraft/internal/draft"
	"github.com/nlebedev/chardraft/internal/merge"
	"github.com/nlebedev/chardraft/internal/model"
	"github.com/nlebedev/chardraft/internal/view"
)

// Session binder errors
var (
	ErrNotJoined      = errors.New("not joined to this draft")
	ErrUpdateInFlight = errors.New("previous update still in flight")
)

// PlayerStore is the persistence contract the binder consumes
type PlayerStore interface {
	SavePlayers(ctx context.Context, draftID model.DraftID, players []model.Player) error
	LoadPlayers(ctx context.Context, draftID model.DraftID) ([]model.Player, error)
}

// Identity is the client-held (name, credential) pair used to locate
// and authorize a Player record. The credential is an opaque string
// compared for equality; this is coordination, not a security boundary.
type Identity struct {
	Name       string
	Credential string
}

// Binder drives one client session against a draft
type Binder struct {
	draft       model.Draft
	candidates  []model.CharacterID
	engine      *draft.Engine
	store       PlayerStore
	broadcaster broadcast.Broadcaster
	logger      *slog.Logger

	mu          sync.RWMutex
	players     []model.Player
	identity    Identity
	updating    bool
	unsubscribe func()
}

// NewBinder creates a binder for the given draft
func NewBinder(d model.Draft, engine *draft.Engine, store PlayerStore, broadcaster broadcast.Broadcaster, logger *slog.Logger) *Binder {
	return &Binder{
		draft:       d,
		candidates:  catalog.CharactersFor(d.GameID),
		engine:      engine,
		store:       store,
		broadcaster: broadcaster,
		logger: logger.With(
			slog.String("component", "session"),
			slog.String("draft_id", string(d.ID)),
		),
		players: []model.Player{},
	}
}

// Load fetches the roster from the store. Load fails open: a storage
// error leaves the session on an empty roster rather than unusable.
func (b *Binder) Load(ctx context.Context) {
	players, err := b.store.LoadPlayers(ctx, b.draft.ID)
	if err != nil {
		b.logger.Warn("roster load failed, starting empty",
			slog.String("error", err.Error()))
		players = []model.Player{}
	}

	b.mu.Lock()
	b.players = players
	b.mu.Unlock()
}

// Subscribe starts folding rebroadcasts from other sessions into the
// local snapshot. Incoming updates replay only their old→new delta so
// newer local edits survive stale rebroadcasts.
func (b *Binder) Subscribe(ctx context.Context) error {
	unsubscribe, err := b.broadcaster.Subscribe(ctx, b.draft.ID, func(update broadcast.Update) {
		b.mu.Lock()
		b.players = merge.Players(update.Old, update.New, b.players)
		b.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()
	return nil
}

// Close ends the subscription, if any
func (b *Binder) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// SetIdentity binds the session to a (name, credential) pair
func (b *Binder) SetIdentity(identity Identity) {
	b.mu.Lock()
	b.identity = identity
	b.mu.Unlock()
}

// Players returns a copy of the current local roster
func (b *Binder) Players() []model.Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return model.ClonePlayers(b.players)
}

// CurrentUser resolves the session identity to its Player record, or
// nil when the identity matches no roster entry
func (b *Binder) CurrentUser() *model.Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.currentUserLocked()
}

func (b *Binder) currentUserLocked() *model.Player {
	idx := model.FindPlayerByName(b.players, b.identity.Name)
	if idx < 0 || b.players[idx].Credential != b.identity.Credential {
		return nil
	}
	user := b.players[idx].Clone()
	return &user
}

// Updating reports whether a broadcast-and-persist is outstanding;
// callers should disable further action submission while it is
func (b *Binder) Updating() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updating
}

// Characters projects the per-character view state for the session user
func (b *Binder) Characters() []model.Character {
	b.mu.RLock()
	players := model.ClonePlayers(b.players)
	b.mu.RUnlock()

	return view.Project(b.candidates, players, b.CurrentUser(), b.draft.Params)
}

// Society returns the shared society value derived from the session
// user's seed history, or "" when no user or history exists
func (b *Binder) Society() string {
	user := b.CurrentUser()
	if user == nil {
		return ""
	}
	return catalog.Society(user.Seed)
}

// Join adds or re-binds a player and adopts their identity
func (b *Binder) Join(ctx context.Context, name, credential string, color model.PlayerColor) error {
	b.mu.Lock()
	if b.updating {
		b.mu.Unlock()
		return ErrUpdateInFlight
	}

	old := b.players
	next, joined, err := b.engine.Join(old, name, credential, color)
	if err != nil {
		b.mu.Unlock()
		return err
	}

	b.identity = Identity{Name: joined.Name, Credential: joined.Credential}

	if model.FindPlayer(old, joined.ID) >= 0 {
		// Rejoin: roster unchanged, nothing to commit
		b.mu.Unlock()
		return nil
	}
	return b.commitLocked(ctx, old, next)
}

// Leave removes the session's player from the draft
func (b *Binder) Leave(ctx context.Context) error {
	return b.dispatch(ctx, func(players []model.Player, actor model.PlayerID) ([]model.Player, error) {
		return b.engine.Leave(players, actor)
	})
}

// SetColor changes the session player's color
func (b *Binder) SetColor(ctx context.Context, color model.PlayerColor) error {
	return b.dispatch(ctx, func(players []model.Player, actor model.PlayerID) ([]model.Player, error) {
		return b.engine.SetColor(players, actor, color)
	})
}

// Start begins the next ban or draft phase
func (b *Binder) Start(ctx context.Context) error {
	return b.dispatch(ctx, func(players []model.Player, actor model.PlayerID) ([]model.Player, error) {
		return b.engine.Start(players, actor, b.candidates, b.draft.Params)
	})
}

// Ban bans a character during the ban phase
func (b *Binder) Ban(ctx context.Context, characterID model.CharacterID) error {
	return b.dispatch(ctx, func(players []model.Player, actor model.PlayerID) ([]model.Player, error) {
		return b.engine.Ban(players, actor, characterID, b.candidates, b.draft.Params)
	})
}

// Pick locks the session player onto a character
func (b *Binder) Pick(ctx context.Context, characterID model.CharacterID) error {
	return b.dispatch(ctx, func(players []model.Player, actor model.PlayerID) ([]model.Player, error) {
		return b.engine.Pick(players, actor, characterID, b.draft.Params)
	})
}

// Skip reconfirms the session player's current pick
func (b *Binder) Skip(ctx context.Context) error {
	return b.dispatch(ctx, func(players []model.Player, actor model.PlayerID) ([]model.Player, error) {
		return b.engine.Skip(players, actor, b.draft.Params)
	})
}

// Lose declares the session player the round's loser
func (b *Binder) Lose(ctx context.Context) error {
	return b.dispatch(ctx, func(players []model.Player, actor model.PlayerID) ([]model.Player, error) {
		return b.engine.Lose(players, actor, b.draft.Params)
	})
}

// dispatch runs one reducer action for the session user and commits the
// result. Reducer errors leave the roster untouched and are surfaced to
// the caller only.
func (b *Binder) dispatch(ctx context.Context, action func(players []model.Player, actor model.PlayerID) ([]model.Player, error)) error {
	b.mu.Lock()
	if b.updating {
		b.mu.Unlock()
		return ErrUpdateInFlight
	}

	user := b.currentUserLocked()
	if user == nil {
		b.mu.Unlock()
		return ErrNotJoined
	}

	old := b.players
	next, err := action(old, user.ID)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	return b.commitLocked(ctx, old, next)
}

// commitLocked applies the new roster locally, then broadcasts and
// persists it, clearing the updating flag when both settle. Called with
// b.mu held; releases it. Broadcast and storage failures are logged and
// returned but the optimistic local state stays applied: there is no
// rollback and no retry, only an inconsistency window the next
// successful action closes.
func (b *Binder) commitLocked(ctx context.Context, old, next []model.Player) error {
	b.players = next
	b.updating = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.updating = false
		b.mu.Unlock()
	}()

	update := broadcast.Update{Old: old, New: next}
	if err := b.broadcaster.Publish(ctx, b.draft.ID, update); err != nil {
		b.logger.Error("broadcast failed", slog.String("error", err.Error()))
		return fmt.Errorf("broadcast failed: %w", err)
	}

	if err := b.store.SavePlayers(ctx, b.draft.ID, next); err != nil {
		b.logger.Error("roster save failed", slog.String("error", err.Error()))
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}
