package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nlebedev/chardraft/internal/model"
	"github.com/nlebedev/chardraft/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Client exposes the underlying connection for collaborators sharing it
// (the pub/sub broadcaster rides on the same client)
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// Draft operations

func (s *Storage) SaveDraft(ctx context.Context, draft *model.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	// Pipeline keeps the record, the name index, and the listing set in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, draftKey(draft.ID), data, s.cfg.DraftTTL)
	pipe.Set(ctx, draftNameIndexKey(draft.Name), string(draft.ID), s.cfg.DraftTTL)
	pipe.SAdd(ctx, draftsIndexKey(), string(draft.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDraft(ctx context.Context, id model.DraftID) (*model.Draft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDraftNotFound
		}
		return nil, err
	}

	var draft model.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *Storage) GetDraftByName(ctx context.Context, name string) (*model.Draft, error) {
	idStr, err := s.client.Get(ctx, draftNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDraftNotFound
		}
		return nil, err
	}

	return s.GetDraft(ctx, model.DraftID(idStr))
}

func (s *Storage) ListDrafts(ctx context.Context) ([]*model.Draft, error) {
	ids, err := s.client.SMembers(ctx, draftsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	drafts := make([]*model.Draft, 0, len(ids))
	for _, id := range ids {
		draft, err := s.GetDraft(ctx, model.DraftID(id))
		if err != nil {
			if errors.Is(err, model.ErrDraftNotFound) {
				// Expired record still referenced by the set
				s.client.SRem(ctx, draftsIndexKey(), id)
				continue
			}
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func (s *Storage) DeleteDraft(ctx context.Context, id model.DraftID) error {
	draft, err := s.GetDraft(ctx, id)
	if err != nil && !errors.Is(err, model.ErrDraftNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	if draft != nil {
		pipe.Del(ctx, draftNameIndexKey(draft.Name))
	}
	pipe.Del(ctx, draftKey(id))
	pipe.Del(ctx, playersKey(id))
	pipe.SRem(ctx, draftsIndexKey(), string(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Roster operations

func (s *Storage) SavePlayers(ctx context.Context, draftID model.DraftID, players []model.Player) error {
	data, err := json.Marshal(players)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, playersKey(draftID), data, s.cfg.RosterTTL).Err()
}

func (s *Storage) LoadPlayers(ctx context.Context, draftID model.DraftID) ([]model.Player, error) {
	data, err := s.client.Get(ctx, playersKey(draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Player{}, nil
		}
		return nil, err
	}

	var players []model.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Storage) DeletePlayers(ctx context.Context, draftID model.DraftID) error {
	return s.client.Del(ctx, playersKey(draftID)).Err()
}
