// Package broadcast is the realtime fan-out contract between draft
// sessions. Every mutating action publishes the pre- and post-mutation
// roster as one payload; receivers need both snapshots to replay only
// the delta onto their own optimistic local state.
package broadcast

import (
	"context"

	"github.com/nlebedev/chardraft/internal/model"
)

// Update is one broadcast payload
type Update struct {
	Old []model.Player `json:"old"`
	New []model.Player `json:"new"`
}

// Handler receives updates for a subscribed draft
type Handler func(update Update)

// Broadcaster rebroadcasts roster updates to every session of a draft
type Broadcaster interface {
	// Publish sends the update to all current subscribers of the draft
	Publish(ctx context.Context, draftID model.DraftID, update Update) error

	// Subscribe delivers every subsequent update for the draft to the
	// handler until the returned unsubscribe function is called
	Subscribe(ctx context.Context, draftID model.DraftID, handler Handler) (func(), error)
}
