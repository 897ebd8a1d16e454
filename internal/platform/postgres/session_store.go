package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Sanjeev-Guntha/synapse/internal/platform/logger"
	"github.com/Sanjeev-Guntha/synapse/internal/store"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by the stores.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SessionStore implements store.SessionStore on the session_snapshots table.
type SessionStore struct {
	db DBTX
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore.
func NewSessionStore(db DBTX) *SessionStore {
	return &SessionStore{db: db}
}

// Load implements store.SessionStore.
func (s *SessionStore) Load(ctx context.Context, key string) (*store.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM session_snapshots WHERE key = $1`,
		key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrSnapshotNotFound
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, nil).ErrorContext(ctx, "failed to load session snapshot", "error", err)
		return nil, store.NewStoreError("session_snapshot", "load", "query failed", MapError(err))
	}
	return store.DecodeSnapshot(data)
}

// Save implements store.SessionStore.
func (s *SessionStore) Save(ctx context.Context, key string, snapshot store.Snapshot) error {
	data, err := store.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_snapshots (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, key, string(data))
	if err != nil {
		logger.FromContextOrDefault(ctx, nil).ErrorContext(ctx, "failed to save session snapshot", "error", err)
		return store.NewStoreError("session_snapshot", "save", "upsert failed", MapError(err))
	}
	return nil
}

// Clear implements store.SessionStore.
func (s *SessionStore) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_snapshots WHERE key = $1`, key); err != nil {
		return store.NewStoreError("session_snapshot", "clear", "delete failed", MapError(err))
	}
	return nil
}
