package draft

import (
	"github.com/nlebedev/chardraft/internal/model"
)

// AdvanceTurn hands the active turn from the acting player to the next
// roster entry in array order, propagating the acting player's phase
// state. Every other player is disabled. Turn order is the array order
// at the time: players who join mid-phase wait for the next phase
// restart to enter the rotation.
//
// The acting player must currently be choosing or banning; the roster
// is mutated in place only on success.
func AdvanceTurn(players []model.Player, actorID model.PlayerID) error {
	idx := model.FindPlayer(players, actorID)
	if idx < 0 {
		return model.ErrPlayerNotFound
	}

	state := players[idx].State
	if state != model.StateChoosing && state != model.StateBanning {
		return model.ErrInvalidTurn
	}

	nextIdx := (idx + 1) % len(players)
	for i := range players {
		players[i].Disabled = true
	}
	players[nextIdx].State = state
	players[nextIdx].Disabled = false
	return nil
}
