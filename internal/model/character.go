package model

// CharacterID identifies a selectable character within a game variant
type CharacterID string

// CharacterPlayer is a player reference embedded in a character view,
// carrying just what the read side needs
type CharacterPlayer struct {
	ID     PlayerID    `json:"id"`
	Name   string      `json:"name"`
	Color  PlayerColor `json:"color"`
	Amount int         `json:"amount,omitempty"`
}

// Character is the derived per-character view state. It is recomputed
// from the roster whenever players or the viewing user change, and is
// never persisted.
type Character struct {
	ID              CharacterID       `json:"id"`
	LockedBy        *CharacterPlayer  `json:"locked_by,omitempty"`
	BannedBy        *CharacterPlayer  `json:"banned_by,omitempty"`
	WasLockedBy     []CharacterPlayer `json:"was_locked_by"`
	LoserBannedFor  []CharacterPlayer `json:"loser_banned_for"`
	AvailableFor    []CharacterPlayer `json:"available_for"`
	UserLoserBanned *CharacterPlayer  `json:"user_loser_banned,omitempty"`
	Disabled        bool              `json:"disabled"`
}
