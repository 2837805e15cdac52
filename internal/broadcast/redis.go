package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nlebedev/chardraft/internal/model"
)

// RedisBroadcaster fans updates out across processes over Redis pub/sub.
// It shares the connection of the Redis storage backend.
type RedisBroadcaster struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisBroadcaster implements Broadcaster
var _ Broadcaster = (*RedisBroadcaster)(nil)

// NewRedis creates a broadcaster on an existing Redis client
func NewRedis(client *redis.Client, logger *slog.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client: client,
		logger: logger.With(slog.String("component", "broadcast")),
	}
}

// channelKey returns the pub/sub channel name for a draft's broadcasts
func channelKey(draftID model.DraftID) string {
	return fmt.Sprintf("chardraft:events:%s", draftID)
}

// Publish sends the update to the draft's channel
func (b *RedisBroadcaster) Publish(ctx context.Context, draftID model.DraftID, update Update) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channelKey(draftID), data).Err()
}

// Subscribe listens on the draft's channel until unsubscribed. Payloads
// that fail to decode are logged and skipped; the subscription survives.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, draftID model.DraftID, handler Handler) (func(), error) {
	pubsub := b.client.Subscribe(ctx, channelKey(draftID))

	// Block until the subscription is live so no update published after
	// Subscribe returns can be missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	go func() {
		for msg := range pubsub.Channel() {
			var update Update
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				b.logger.Warn("dropping malformed broadcast",
					slog.String("draft_id", string(draftID)),
					slog.String("error", err.Error()))
				continue
			}
			handler(update)
		}
	}()

	unsubscribe := func() {
		if err := pubsub.Close(); err != nil {
			b.logger.Warn("pubsub close failed",
				slog.String("draft_id", string(draftID)),
				slog.String("error", err.Error()))
		}
	}
	return unsubscribe, nil
}
