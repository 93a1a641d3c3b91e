package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"snakyarena/models"
	"snakyarena/storage"
)

// Store is the Redis-backed implementation of the live roster storage.
// Sessions are JSON values with a TTL; an id set serves as the roster index.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
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

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.LiveStore = (*Store)(nil)

// SaveSession writes the session and refreshes its TTL, so the same call
// serves both session creation and heartbeats.
func (s *Store) SaveSession(ctx context.Context, session *storage.LiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, sessionIndexKey(), session.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetSession(ctx context.Context, id string) (*storage.LiveSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, err
	}

	var session storage.LiveSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) ListLiveSessions(ctx context.Context) ([]models.ActivePlayer, error) {
	ids, err := s.client.SMembers(ctx, sessionIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []models.ActivePlayer{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sessionKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]models.ActivePlayer, 0, len(values))
	for i, val := range values {
		if val == nil {
			// Session expired without an explicit end; drop it from the index.
			s.client.SRem(ctx, sessionIndexKey(), ids[i])
			continue
		}

		var session storage.LiveSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue // Skip invalid data
		}
		if !session.IsLive {
			continue
		}
		players = append(players, session.ActivePlayer)
	}

	// SMembers order is arbitrary; sort so repeated reads of unchanged data
	// return identical output.
	sort.Slice(players, func(i, j int) bool {
		if players[i].StartedAt.Equal(players[j].StartedAt) {
			return players[i].ID < players[j].ID
		}
		return players[i].StartedAt.Before(players[j].StartedAt)
	})

	return players, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, sessionIndexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}
