package redis

import (
	"context"
	"os"
	"testing"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionStore_Integration runs against a real server when REDIS_ADDR is set.
func TestSessionStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}

	ctx := context.Background()
	rdb, err := Connect(ctx, Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewSessionStore(rdb)
	key := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = s.Clear(context.Background(), key) })

	_, err = s.Load(ctx, key)
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)

	user := domain.NewUser("Grace", "grace@example.com")
	require.NoError(t, s.Save(ctx, key, store.Snapshot{User: user, IsAuthenticated: true}))

	loaded, err := s.Load(ctx, key)
	require.NoError(t, err)
	assert.True(t, loaded.IsAuthenticated)
	assert.Equal(t, user, loaded.User)

	require.NoError(t, s.Clear(ctx, key))
	_, err = s.Load(ctx, key)
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
