package model

import "time"

// DraftID uniquely identifies a draft session
type DraftID string

// GameID selects the game variant a draft is for
type GameID string

const (
	// GameCoe5 is the Conquest of Elysium 5 character set
	GameCoe5 GameID = "coe5"
	// GameCiv6 is the Civilization 6 character set
	GameCiv6 GameID = "civ6"
)

// GameIDs lists the supported game variants
var GameIDs = []GameID{GameCoe5, GameCiv6}

// DraftParams are the immutable per-draft rule parameters
type DraftParams struct {
	// Random is the number of characters offered per player when > 0
	Random int `json:"random"`
	// Bans is the number of ban-phase rounds per player
	Bans int `json:"bans"`
	// LoserBans is the ban duration imposed on a round's loser
	LoserBans int `json:"loser_bans"`
	// LoserSlots is the slot penalty accrued per loss
	LoserSlots int `json:"loser_slots"`
	// Repick is the max allowed re-picks before locking is forced
	Repick int `json:"repick"`
}

// Draft is a draft session. Its roster is stored separately as []Player.
type Draft struct {
	ID        DraftID     `json:"id"`
	Name      string      `json:"name"`
	Password  string      `json:"password"`
	GameID    GameID      `json:"game_id"`
	Params    DraftParams `json:"params"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
