// Package merge folds an incoming roster broadcast into a client's local
// snapshot without clobbering newer local edits. Broadcasts carry both
// the sender's pre-mutation ("old") and post-mutation ("incoming")
// snapshots; the difference between the two is the only part replayed
// onto local state, so concurrent changes the receiver already applied
// locally survive a stale rebroadcast. This bounds, but does not
// eliminate, lost-update races.
package merge

import (
	"reflect"

	"github.com/nlebedev/chardraft/internal/model"
)

// Players replays the old→incoming delta onto the local roster and
// returns the merged result. None of the inputs are mutated.
func Players(old, incoming, local []model.Player) []model.Player {
	oldByID := indexByID(old)
	incomingByID := indexByID(incoming)

	deleted := make(map[model.PlayerID]bool)
	for i := range old {
		if _, ok := incomingByID[old[i].ID]; !ok {
			deleted[old[i].ID] = true
		}
	}

	merged := make([]model.Player, 0, len(local))
	for i := range local {
		id := local[i].ID
		if deleted[id] {
			continue
		}
		if j, ok := incomingByID[id]; ok {
			if k, existed := oldByID[id]; !existed || !reflect.DeepEqual(old[k], incoming[j]) {
				// Modified (or reappeared): take the incoming record whole
				merged = append(merged, incoming[j].Clone())
				continue
			}
		}
		merged = append(merged, local[i].Clone())
	}

	// Insert additions after their nearest preceding neighbour already
	// present locally, preserving the sender's relative ordering even
	// when local insertions have shifted absolute positions
	for i := range incoming {
		id := incoming[i].ID
		if _, existed := oldByID[id]; existed {
			continue
		}
		if model.FindPlayer(merged, id) >= 0 {
			continue
		}

		at := 0
		for j := i - 1; j >= 0; j-- {
			if k := model.FindPlayer(merged, incoming[j].ID); k >= 0 {
				at = k + 1
				break
			}
		}

		merged = append(merged, model.Player{})
		copy(merged[at+1:], merged[at:])
		merged[at] = incoming[i].Clone()
	}

	return merged
}

func indexByID(players []model.Player) map[model.PlayerID]int {
	out := make(map[model.PlayerID]int, len(players))
	for i := range players {
		out[players[i].ID] = i
	}
	return out
}
