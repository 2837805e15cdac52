package request

import (
	"github.com/nlebedev/chardraft/internal/model"
)

// CreateDraftRequest is the body of POST /api/v1/drafts
type CreateDraftRequest struct {
	Name     string            `json:"name"`
	Password string            `json:"password"`
	GameID   model.GameID      `json:"game_id"`
	Params   model.DraftParams `json:"params"`
}

// DeleteDraftRequest is the body of DELETE /api/v1/drafts/{id}
type DeleteDraftRequest struct {
	Password string `json:"password"`
}

// SavePlayersRequest is the body of PUT /api/v1/drafts/{id}/players.
// Both snapshots travel together: the server persists the new roster
// and relays the old/new pair unchanged to every other session, which
// needs the pair to merge the delta into its own local state.
type SavePlayersRequest struct {
	Old []model.Player `json:"old"`
	New []model.Player `json:"new"`
}
