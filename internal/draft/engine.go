package draft

import (
	"github.com/google/uuid"

	"github.com/nlebedev/chardraft/internal/dependencies/random"
	"github.com/nlebedev/chardraft/internal/model"
)

// Engine computes roster transitions for every draft action. Each action
// takes the current roster and returns a fresh one; on error the input
// roster is returned unchanged, so a failed action is always a no-op.
// The engine holds no roster state of its own and every method is safe
// to call from whichever client currently believes it holds the turn.
type Engine struct {
	random random.Random
}

// NewEngine creates an Engine using the given randomness source
func NewEngine(rnd random.Random) *Engine {
	return &Engine{random: rnd}
}

// Join adds a new player, or re-binds an existing one by name and
// credential. Rejoining is always allowed with the correct credential;
// a new name is rejected once a draft phase is underway (nobody hosting).
func (e *Engine) Join(players []model.Player, name, credential string, color model.PlayerColor) ([]model.Player, model.Player, error) {
	if idx := model.FindPlayerByName(players, name); idx >= 0 {
		if players[idx].Credential != credential {
			return players, model.Player{}, model.ErrWrongPassword
		}
		return players, players[idx].Clone(), nil
	}

	if len(players) > 0 && !anyHosting(players) {
		return players, model.Player{}, model.ErrDraftInProgress
	}

	if color == "" {
		color = model.DefaultColor
	}

	state := model.StateWaiting
	if len(players) == 0 {
		state = model.StateHosting
	}

	player := model.Player{
		ID:          model.PlayerID(uuid.NewString()),
		Name:        name,
		Credential:  credential,
		Color:       color,
		State:       state,
		Disabled:    len(players) > 0,
		Banned:      []model.CharacterID{},
		Skipped:     []model.PlayerCharacter{},
		LoserBanned: []model.PlayerCharacter{},
		Available:   []model.CharacterID{},
		Seed:        sharedSeed(players),
	}

	next := model.ClonePlayers(players)
	next = append(next, player)
	return next, player.Clone(), nil
}

// Leave removes a player and resets the remaining roster to a fresh
// lobby: first player hosting and enabled, everyone else waiting.
func (e *Engine) Leave(players []model.Player, playerID model.PlayerID) ([]model.Player, error) {
	idx := model.FindPlayer(players, playerID)
	if idx < 0 {
		return players, model.ErrPlayerNotFound
	}

	next := model.ClonePlayers(players)
	next = append(next[:idx], next[idx+1:]...)
	resetLobby(next)
	return next, nil
}

// SetColor replaces the player's color. Always legal.
func (e *Engine) SetColor(players []model.Player, playerID model.PlayerID, color model.PlayerColor) ([]model.Player, error) {
	idx := model.FindPlayer(players, playerID)
	if idx < 0 {
		return players, model.ErrPlayerNotFound
	}

	next := model.ClonePlayers(players)
	next[idx].Color = color
	return next, nil
}

// Start begins the next round: the host rotates to the back of the
// roster, per-round state is cleared, the shared seed is extended, and
// the ban phase (or the draft phase directly, with zero bans) begins.
func (e *Engine) Start(players []model.Player, actorID model.PlayerID, candidates []model.CharacterID, params model.DraftParams) ([]model.Player, error) {
	idx := model.FindPlayer(players, actorID)
	if idx < 0 {
		return players, model.ErrPlayerNotFound
	}
	if players[idx].State != model.StateHosting {
		return players, model.ErrWrongState
	}

	next := model.ClonePlayers(players)
	// Host to the back, guaranteeing host rotation across games
	next = append(next[1:], next[0])

	seed := append(sharedSeed(next), e.random.Float64())
	if len(seed) > model.SeedLimit {
		seed = seed[len(seed)-model.SeedLimit:]
	}

	for i := range next {
		next[i].Locked = nil
		next[i].Banned = []model.CharacterID{}
		next[i].Skipped = []model.PlayerCharacter{}
		next[i].Available = []model.CharacterID{}
		next[i].Seed = append([]float64(nil), seed...)
	}

	if params.Bans > 0 {
		startBan(next)
		return next, nil
	}

	if err := e.startDraft(next, candidates, params); err != nil {
		return players, err
	}
	return next, nil
}

// Ban records the actor's ban and either hands the turn on or, once
// every player has used all their bans, enters the draft phase.
func (e *Engine) Ban(players []model.Player, actorID model.PlayerID, characterID model.CharacterID, candidates []model.CharacterID, params model.DraftParams) ([]model.Player, error) {
	idx := model.FindPlayer(players, actorID)
	if idx < 0 {
		return players, model.ErrPlayerNotFound
	}
	if players[idx].State != model.StateBanning {
		return players, model.ErrWrongState
	}
	if len(players[idx].Banned) >= params.Bans {
		return players, model.ErrWrongState
	}

	next := model.ClonePlayers(players)
	next[idx].Banned = append(next[idx].Banned, characterID)

	if bansComplete(next, params) {
		next[idx].State = model.StateWaiting
		if err := e.startDraft(next, candidates, params); err != nil {
			return players, err
		}
		return next, nil
	}

	// Advance while the actor still carries the banning state so the
	// phase propagates to the next player, then stand the actor down
	if err := AdvanceTurn(next, actorID); err != nil {
		return players, err
	}
	next[idx].State = model.StateWaiting
	next[idx].Disabled = true
	return next, nil
}

// Pick locks the actor onto a character. Picking the currently locked
// character is an implicit Skip. Picking a new character when the actor
// already committed forces every other committed player back into
// negotiation, records the abandoned pick in the skip history, and
// re-locks the actor before the turn moves on.
func (e *Engine) Pick(players []model.Player, actorID model.PlayerID, characterID model.CharacterID, params model.DraftParams) ([]model.Player, error) {
	idx := model.FindPlayer(players, actorID)
	if idx < 0 {
		return players, model.ErrPlayerNotFound
	}

	if players[idx].Locked != nil && players[idx].Locked.ID == characterID {
		return e.Skip(players, actorID, params)
	}

	next := model.ClonePlayers(players)
	actor := &next[idx]
	prev := actor.Locked

	if prev != nil && prev.Amount > 0 {
		// The pick undoes a commit: committed rivals renegotiate
		for j := range next {
			if j == idx {
				continue
			}
			if next[j].State == model.StateLocked {
				next[j].State = model.StateWaiting
				if next[j].Locked != nil && next[j].Locked.Amount > 1 {
					next[j].Locked.Amount = 1
				}
			}
		}
	}

	if prev != nil {
		recordSkip(actor, prev.ID)
	}

	newState := model.StateWaiting
	amount := 0
	if params.Repick == 0 {
		newState = model.StateLocked
		amount = 1
	}
	actor.Locked = &model.PlayerCharacter{ID: characterID, Amount: amount}

	if roundOver(next, idx, newState) {
		actor.State = newState
		e.startGame(next)
		return next, nil
	}

	if err := AdvanceTurn(next, actorID); err != nil {
		return players, err
	}
	actor.State = newState
	actor.Disabled = true
	return next, nil
}

// Skip reconfirms the actor's current pick, counting one repick. The
// first skip commits the player as locked; later skips mark them ready.
// The round ends once everyone is committed or more than half the
// roster is ready.
func (e *Engine) Skip(players []model.Player, actorID model.PlayerID, params model.DraftParams) ([]model.Player, error) {
	idx := model.FindPlayer(players, actorID)
	if idx < 0 {
		return players, model.ErrPlayerNotFound
	}
	if players[idx].State != model.StateChoosing {
		return players, model.ErrWrongState
	}
	if players[idx].Locked == nil {
		return players, model.ErrNoLock
	}

	next := model.ClonePlayers(players)
	actor := &next[idx]

	pre := actor.Locked.Amount
	actor.Locked.Amount++

	newState := model.StateReady
	if pre == 0 {
		newState = model.StateLocked
	}

	if roundOver(next, idx, newState) {
		actor.State = newState
		e.startGame(next)
		return next, nil
	}

	if err := AdvanceTurn(next, actorID); err != nil {
		return players, err
	}
	actor.State = newState
	actor.Disabled = true
	return next, nil
}

// Lose records a round loss: the loser's character is temporarily
// banned for them and their slot penalty grows, while everyone else's
// penalties decay by one. The roster then resets to a fresh lobby for
// the next round.
func (e *Engine) Lose(players []model.Player, actorID model.PlayerID, params model.DraftParams) ([]model.Player, error) {
	idx := model.FindPlayer(players, actorID)
	if idx < 0 {
		return players, model.ErrPlayerNotFound
	}
	if players[idx].State != model.StatePlaying {
		return players, model.ErrWrongState
	}
	if players[idx].Locked == nil {
		return players, model.ErrNoLock
	}

	next := model.ClonePlayers(players)
	for i := range next {
		if i == idx {
			applyLoserPenalty(&next[i], params)
			continue
		}
		decayLoserPenalty(&next[i])
	}

	resetLobby(next)
	return next, nil
}

// startDraft enters the draft phase: random offers are dealt when
// randomization is on, then the first player gets the choosing turn.
func (e *Engine) startDraft(players []model.Player, candidates []model.CharacterID, params model.DraftParams) error {
	if params.Random > 0 {
		if err := allocate(e.random, players, candidates, params); err != nil {
			return err
		}
	}

	for i := range players {
		if i == 0 {
			players[i].State = model.StateChoosing
			players[i].Disabled = false
		} else {
			players[i].State = model.StateWaiting
			players[i].Disabled = true
		}
	}
	return nil
}

// startGame moves everyone into the playing state. Players without a
// lock but with a random offer are dealt a uniformly random pick from it.
func (e *Engine) startGame(players []model.Player) {
	for i := range players {
		p := &players[i]
		if p.Locked == nil && len(p.Available) > 0 {
			id := p.Available[e.random.Intn(len(p.Available))]
			p.Locked = &model.PlayerCharacter{ID: id, Amount: 0}
		}
		p.State = model.StatePlaying
		p.Disabled = true
	}
}

// startBan enters the ban phase: first player banning, rest waiting
func startBan(players []model.Player) {
	for i := range players {
		if i == 0 {
			players[i].State = model.StateBanning
			players[i].Disabled = false
		} else {
			players[i].State = model.StateWaiting
			players[i].Disabled = true
		}
	}
}

// resetLobby restores the pre-draft lobby configuration, clearing
// per-round selections but keeping locks and loser penalties
func resetLobby(players []model.Player) {
	for i := range players {
		if i == 0 {
			players[i].State = model.StateHosting
			players[i].Disabled = false
		} else {
			players[i].State = model.StateWaiting
			players[i].Disabled = true
		}
		players[i].Banned = []model.CharacterID{}
		players[i].Skipped = []model.PlayerCharacter{}
		players[i].Available = []model.CharacterID{}
	}
}

// applyLoserPenalty adds a fresh loser ban for the lost character and
// raises the slot penalty, capped at the random offer size
func applyLoserPenalty(p *model.Player, params model.DraftParams) {
	if params.LoserBans > 0 {
		if entry := p.LoserBannedEntry(p.Locked.ID); entry != nil {
			entry.Amount = params.LoserBans
		} else {
			p.LoserBanned = append(p.LoserBanned, model.PlayerCharacter{
				ID:     p.Locked.ID,
				Amount: params.LoserBans,
			})
		}
	}

	p.LoserSlots += params.LoserSlots
	if p.LoserSlots > params.Random {
		p.LoserSlots = params.Random
	}
}

// decayLoserPenalty counts one non-losing round off every penalty
func decayLoserPenalty(p *model.Player) {
	kept := p.LoserBanned[:0]
	for _, entry := range p.LoserBanned {
		entry.Amount--
		if entry.Amount > 0 {
			kept = append(kept, entry)
		}
	}
	p.LoserBanned = kept

	if p.LoserSlots > 0 {
		p.LoserSlots--
	}
}

// recordSkip increments the skip counter for the abandoned character
func recordSkip(p *model.Player, id model.CharacterID) {
	for i := range p.Skipped {
		if p.Skipped[i].ID == id {
			p.Skipped[i].Amount++
			return
		}
	}
	p.Skipped = append(p.Skipped, model.PlayerCharacter{ID: id, Amount: 1})
}

// roundOver evaluates the end-of-round condition as if the actor had
// already taken their new state: every player committed, or more than
// half the roster ready
func roundOver(players []model.Player, actorIdx int, actorState model.PlayerState) bool {
	ready := 0
	committed := 0
	for i := range players {
		state := players[i].State
		if i == actorIdx {
			state = actorState
		}
		switch state {
		case model.StateLocked, model.StateReady:
			committed++
			if state == model.StateReady {
				ready++
			}
		}
	}
	if committed == len(players) {
		return true
	}
	return ready*2 > len(players)
}

// bansComplete reports whether every player has used all their bans
func bansComplete(players []model.Player, params model.DraftParams) bool {
	for i := range players {
		if len(players[i].Banned) < params.Bans {
			return false
		}
	}
	return true
}

// anyHosting reports whether any player currently holds the host seat
func anyHosting(players []model.Player) bool {
	for i := range players {
		if players[i].State == model.StateHosting {
			return true
		}
	}
	return false
}

// sharedSeed returns a copy of the roster's shared seed history
func sharedSeed(players []model.Player) []float64 {
	if len(players) == 0 {
		return []float64{}
	}
	return append([]float64(nil), players[0].Seed...)
}
