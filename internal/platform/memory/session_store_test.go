package memory

import (
	"context"
	"testing"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSessionStore()

	_, err := s.Load(ctx, "auth-storage")
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)

	user := domain.NewUser("Ada", "ada@example.com")
	require.NoError(t, s.Save(ctx, "auth-storage", store.Snapshot{User: user, IsAuthenticated: true}))

	loaded, err := s.Load(ctx, "auth-storage")
	require.NoError(t, err)
	assert.True(t, loaded.IsAuthenticated)
	assert.Equal(t, user, loaded.User)

	loaded.User.Name = "mutated"
	again, err := s.Load(ctx, "auth-storage")
	require.NoError(t, err)
	assert.Equal(t, "Ada", again.User.Name)

	_, err = s.Load(ctx, "other-key")
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)

	require.NoError(t, s.Clear(ctx, "auth-storage"))
	require.NoError(t, s.Clear(ctx, "auth-storage"))
	_, err = s.Load(ctx, "auth-storage")
	assert.ErrorIs(t, err, store.ErrSnapshotNotFound)
}
