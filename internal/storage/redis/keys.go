package redis

import (
	"fmt"

	"github.com/nlebedev/chardraft/internal/model"
)

// Key prefix for all draft-related data
const keyPrefix = "chardraft"

// draftKey returns the Redis key for a Draft
func draftKey(id model.DraftID) string {
	return fmt.Sprintf("%s:draft:%s", keyPrefix, id)
}

// draftNameIndexKey returns the Redis key for the name -> draft_id index
func draftNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:draft_name:%s", keyPrefix, name)
}

// draftsIndexKey returns the Redis key for the SET of all draft ids
func draftsIndexKey() string {
	return fmt.Sprintf("%s:idx:drafts", keyPrefix)
}

// playersKey returns the Redis key for a draft's roster blob
func playersKey(draftID model.DraftID) string {
	return fmt.Sprintf("%s:players:%s", keyPrefix, draftID)
}
