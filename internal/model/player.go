package model

// PlayerID uniquely identifies a player within a draft
type PlayerID string

// PlayerState is a player's position in the draft state machine
type PlayerState string

const (
	// StateHosting marks the player empowered to start the next phase
	StateHosting PlayerState = "hosting"
	// StateChoosing marks the player actively selecting or locking a character
	StateChoosing PlayerState = "choosing"
	// StateBanning marks the player actively selecting a character to ban
	StateBanning PlayerState = "banning"
	// StateLocked marks a player who committed a pick with no repicks left
	StateLocked PlayerState = "locked"
	// StateReady marks a player who skipped at least once and reconfirmed
	StateReady PlayerState = "ready"
	// StatePlaying marks a player in the running game
	StatePlaying PlayerState = "playing"
	// StateWaiting marks a player not currently empowered to act
	StateWaiting PlayerState = "waiting"
)

// PlayerColor is one of the fixed color palette values
type PlayerColor string

// Colors is the palette of assignable player colors
var Colors = []PlayerColor{
	"red", "blue", "green", "brown", "orange", "teal", "purple",
	"olive", "violet", "yellow", "pink", "grey", "white", "black",
}

// DefaultColor is assigned to players who join without choosing one
const DefaultColor PlayerColor = "white"

// SeedLimit bounds the shared seed history kept on each player
const SeedLimit = 20

// PlayerCharacter pairs a character id with a counter, used for current
// locks, skip history, and loser bans
type PlayerCharacter struct {
	ID     CharacterID `json:"id"`
	Amount int         `json:"amount"`
}

// Player is one roster entry of a draft. The full []Player slice is the
// single source of truth broadcast and persisted after every action.
type Player struct {
	ID          PlayerID          `json:"id"`
	Name        string            `json:"name"`
	Credential  string            `json:"credential"`
	Color       PlayerColor       `json:"color"`
	State       PlayerState       `json:"state"`
	Disabled    bool              `json:"disabled"`
	Locked      *PlayerCharacter  `json:"locked,omitempty"`
	Banned      []CharacterID     `json:"banned"`
	Skipped     []PlayerCharacter `json:"skipped"`
	LoserBanned []PlayerCharacter `json:"loser_banned"`
	LoserSlots  int               `json:"loser_slots"`
	Available   []CharacterID     `json:"available"`
	Seed        []float64         `json:"seed"`
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	out := p
	if p.Locked != nil {
		locked := *p.Locked
		out.Locked = &locked
	}
	out.Banned = append([]CharacterID(nil), p.Banned...)
	out.Skipped = append([]PlayerCharacter(nil), p.Skipped...)
	out.LoserBanned = append([]PlayerCharacter(nil), p.LoserBanned...)
	out.Available = append([]CharacterID(nil), p.Available...)
	out.Seed = append([]float64(nil), p.Seed...)
	return out
}

// HasBanned reports whether the player has banned the given character
func (p *Player) HasBanned(id CharacterID) bool {
	for _, b := range p.Banned {
		if b == id {
			return true
		}
	}
	return false
}

// HasAvailable reports whether the character is in the player's random offer
func (p *Player) HasAvailable(id CharacterID) bool {
	for _, a := range p.Available {
		if a == id {
			return true
		}
	}
	return false
}

// SkippedAmount returns how many times the player skipped away from the character
func (p *Player) SkippedAmount(id CharacterID) int {
	for _, s := range p.Skipped {
		if s.ID == id {
			return s.Amount
		}
	}
	return 0
}

// LoserBannedEntry returns the player's active loser ban for the character, or nil
func (p *Player) LoserBannedEntry(id CharacterID) *PlayerCharacter {
	for i := range p.LoserBanned {
		if p.LoserBanned[i].ID == id {
			return &p.LoserBanned[i]
		}
	}
	return nil
}

// ClonePlayers returns a deep copy of the roster
func ClonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}

// FindPlayer returns the index of the player with the given id, or -1
func FindPlayer(players []Player, id PlayerID) int {
	for i := range players {
		if players[i].ID == id {
			return i
		}
	}
	return -1
}

// FindPlayerByName returns the index of the player with the given name, or -1
func FindPlayerByName(players []Player, name string) int {
	for i := range players {
		if players[i].Name == name {
			return i
		}
	}
	return -1
}
