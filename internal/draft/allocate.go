package draft

import (
	"github.com/nlebedev/chardraft/internal/dependencies/random"
	"github.com/nlebedev/chardraft/internal/model"
)

// allocate deals each player their random character offer for the round.
//
// The candidate pool excludes every banned character. The pool is
// shuffled once; players then draw in roster order, preferring
// characters they are not loser-banned from and falling back to their
// loser-banned ones only when the preferred pool runs dry. A character
// claimed by an earlier player is never offered again in the same pass.
//
// Fails with ErrInsufficientPool, leaving the roster untouched, when the
// pool cannot cover the full nominal offer for every player.
func allocate(rnd random.Random, players []model.Player, candidates []model.CharacterID, params model.DraftParams) error {
	pool := make([]model.CharacterID, 0, len(candidates))
	for _, id := range candidates {
		if bannedByAny(players, id) {
			continue
		}
		pool = append(pool, id)
	}

	if len(pool) < params.Random*len(players) {
		return model.ErrInsufficientPool
	}

	random.Shuffle(rnd, pool)

	claimed := make(map[model.CharacterID]bool, len(pool))
	offers := make([][]model.CharacterID, len(players))

	for i := range players {
		p := &players[i]
		amount := params.Random - p.LoserSlots
		if amount < 1 {
			amount = 1
		}

		offer := make([]model.CharacterID, 0, amount)
		for _, id := range pool {
			if len(offer) >= amount {
				break
			}
			if claimed[id] || p.LoserBannedEntry(id) != nil {
				continue
			}
			claimed[id] = true
			offer = append(offer, id)
		}

		// Not enough unpenalized characters left: ignore the loser-ban
		// filter, still never reusing a claimed character
		if len(offer) < amount {
			for _, id := range pool {
				if len(offer) >= amount {
					break
				}
				if claimed[id] {
					continue
				}
				claimed[id] = true
				offer = append(offer, id)
			}
		}

		offers[i] = offer
	}

	for i := range players {
		players[i].Available = offers[i]
	}
	return nil
}

// bannedByAny reports whether any player has banned the character
func bannedByAny(players []model.Player, id model.CharacterID) bool {
	for i := range players {
		if players[i].HasBanned(id) {
			return true
		}
	}
	return false
}
