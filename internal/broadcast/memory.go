package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nlebedev/chardraft/internal/model"
)

// subscriberBuffer bounds how many undelivered updates a slow
// subscriber may queue before newer ones are dropped
const subscriberBuffer = 16

// Hub is an in-process Broadcaster: every subscriber runs in the same
// process and receives updates over a buffered channel. Used by tests
// and by single-node deployments.
type Hub struct {
	mu     sync.RWMutex
	subs   map[model.DraftID]map[*subscriber]bool
	logger *slog.Logger
}

type subscriber struct {
	updates chan Update
	done    chan struct{}
	stop    sync.Once
}

func (s *subscriber) close() {
	s.stop.Do(func() { close(s.done) })
}

// Ensure Hub implements Broadcaster
var _ Broadcaster = (*Hub)(nil)

// NewHub creates a new in-process hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[model.DraftID]map[*subscriber]bool),
		logger: logger.With(slog.String("component", "broadcast")),
	}
}

// Publish fans the update out to every subscriber of the draft.
// Subscribers that cannot keep up lose the update rather than block
// the publisher.
func (h *Hub) Publish(ctx context.Context, draftID model.DraftID, update Update) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dropped := 0
	for sub := range h.subs[draftID] {
		select {
		case sub.updates <- update:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("broadcast dropped - subscriber buffer full",
			slog.String("draft_id", string(draftID)),
			slog.Int("dropped", dropped))
	}
	return nil
}

// Subscribe registers a handler for the draft's updates. The handler
// runs on a dedicated goroutine; calling the returned function stops
// delivery and releases the subscription.
func (h *Hub) Subscribe(ctx context.Context, draftID model.DraftID, handler Handler) (func(), error) {
	sub := &subscriber{
		updates: make(chan Update, subscriberBuffer),
		done:    make(chan struct{}),
	}

	h.mu.Lock()
	if h.subs[draftID] == nil {
		h.subs[draftID] = make(map[*subscriber]bool)
	}
	h.subs[draftID][sub] = true
	count := len(h.subs[draftID])
	h.mu.Unlock()

	h.logger.Info("subscriber registered",
		slog.String("draft_id", string(draftID)),
		slog.Int("total_subscribers", count))

	go func() {
		for {
			select {
			case update := <-sub.updates:
				handler(update)
			case <-sub.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[draftID], sub)
			if len(h.subs[draftID]) == 0 {
				delete(h.subs, draftID)
			}
			h.mu.Unlock()
			sub.close()

			h.logger.Info("subscriber unregistered",
				slog.String("draft_id", string(draftID)))
		})
	}
	return unsubscribe, nil
}

// Close stops delivery to every remaining subscriber
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for draftID, subs := range h.subs {
		for sub := range subs {
			sub.close()
		}
		delete(h.subs, draftID)
	}
	return nil
}

// SubscriberCount returns the number of active subscriptions for a draft
func (h *Hub) SubscriberCount(draftID model.DraftID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[draftID])
}
