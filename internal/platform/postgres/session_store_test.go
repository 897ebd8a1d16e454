package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionStore_Integration runs against a real database when DATABASE_URL is set.
func TestSessionStore_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := Open(ctx, url, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db, logger))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	s := NewSessionStore(tx)
	key := "test-" + uuid.NewString()

	_, err = s.Load(ctx, key)
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)

	user := domain.NewUser("", "ada@example.com")
	require.NoError(t, s.Save(ctx, key, store.Snapshot{User: user, IsAuthenticated: true}))
	require.NoError(t, s.Save(ctx, key, store.Snapshot{User: user, IsAuthenticated: false}))

	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.False(t, loaded.IsAuthenticated)
	assert.Equal(t, user, loaded.User)

	require.NoError(t, s.Clear(ctx, key))
	_, err = s.Load(ctx, key)
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)
}
