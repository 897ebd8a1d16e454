package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "synapse:session:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect creates a client and verifies it with a ping.
func Connect(ctx context.Context, opts Options) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// SessionStore implements store.SessionStore with one string key per snapshot.
type SessionStore struct {
	rdb goredis.Cmdable
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore.
func NewSessionStore(rdb goredis.Cmdable) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Load implements store.SessionStore.
func (s *SessionStore) Load(ctx context.Context, key string) (*store.Snapshot, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, store.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("session_snapshot", "load", "get failed",
			fmt.Errorf("%w: %v", store.ErrUnavailable, err))
	}
	return store.DecodeSnapshot(data)
}

// Save implements store.SessionStore. Snapshots do not expire.
func (s *SessionStore) Save(ctx context.Context, key string, snapshot store.Snapshot) error {
	data, err := store.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return store.NewStoreError("session_snapshot", "save", "set failed",
			fmt.Errorf("%w: %v", store.ErrUnavailable, err))
	}
	return nil
}

// Clear implements store.SessionStore.
func (s *SessionStore) Clear(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return store.NewStoreError("session_snapshot", "clear", "del failed",
			fmt.Errorf("%w: %v", store.ErrUnavailable, err))
	}
	return nil
}
