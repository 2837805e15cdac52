// Package view derives per-character read-side state from the roster.
// Projection is pure: it never mutates players and is recomputed in full
// whenever the roster or the viewing user changes.
package view

import (
	"github.com/nlebedev/chardraft/internal/model"
)

// Project builds the character view list for the given catalog order,
// roster, and viewing user. A nil viewer sees every character disabled.
func Project(catalogIDs []model.CharacterID, players []model.Player, viewer *model.Player, params model.DraftParams) []model.Character {
	characters := make([]model.Character, len(catalogIDs))
	for i, id := range catalogIDs {
		characters[i] = project(id, players, viewer, params)
	}
	return characters
}

func project(id model.CharacterID, players []model.Player, viewer *model.Player, params model.DraftParams) model.Character {
	c := model.Character{
		ID:             id,
		WasLockedBy:    []model.CharacterPlayer{},
		LoserBannedFor: []model.CharacterPlayer{},
		AvailableFor:   []model.CharacterPlayer{},
	}

	for i := range players {
		p := &players[i]

		if c.LockedBy == nil && p.Locked != nil && p.Locked.ID == id {
			c.LockedBy = ref(p, 0)
		}
		if c.BannedBy == nil && p.HasBanned(id) {
			c.BannedBy = ref(p, 0)
		}
		if amount := p.SkippedAmount(id); amount > 0 {
			c.WasLockedBy = append(c.WasLockedBy, *ref(p, amount))
		}
		if entry := p.LoserBannedEntry(id); entry != nil {
			c.LoserBannedFor = append(c.LoserBannedFor, *ref(p, entry.Amount))
		}
		if p.HasAvailable(id) {
			c.AvailableFor = append(c.AvailableFor, *ref(p, 0))
		}
	}

	if viewer != nil {
		if entry := viewer.LoserBannedEntry(id); entry != nil {
			c.UserLoserBanned = ref(viewer, entry.Amount)
		}
	}

	c.Disabled = !selectable(&c, viewer, params)
	return c
}

// selectable decides whether the viewing user may currently act on the
// character: they must hold an acting state, the character must not be
// banned or locked away, the repick budget must not be exhausted, and
// outside the ban phase the character must be within the viewer's random
// offer and not loser-banned for them.
func selectable(c *model.Character, viewer *model.Player, params model.DraftParams) bool {
	if viewer == nil {
		return false
	}
	if viewer.State != model.StateChoosing && viewer.State != model.StateBanning {
		return false
	}
	if c.BannedBy != nil {
		return false
	}
	if c.LockedBy != nil && c.LockedBy.ID != viewer.ID {
		return false
	}
	if params.Repick > 0 && viewer.SkippedAmount(c.ID) >= params.Repick {
		return false
	}

	if viewer.State != model.StateBanning {
		if params.Random > 0 && !viewer.HasAvailable(c.ID) {
			return false
		}
		if c.UserLoserBanned != nil {
			return false
		}
	}
	return true
}

func ref(p *model.Player, amount int) *model.CharacterPlayer {
	return &model.CharacterPlayer{
		ID:     p.ID,
		Name:   p.Name,
		Color:  p.Color,
		Amount: amount,
	}
}
