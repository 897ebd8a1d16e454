package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
)

// Snapshot is the persisted slice of the auth state.
type Snapshot struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// SessionStore persists auth snapshots under a namespace key.
type SessionStore interface {
	// Load returns the snapshot saved under key.
	// Returns ErrSnapshotNotFound if nothing has been saved yet.
	Load(ctx context.Context, key string) (*Snapshot, error)

	// Save replaces the snapshot stored under key.
	Save(ctx context.Context, key string, snapshot Snapshot) error

	// Clear removes the snapshot stored under key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
}

// EncodeSnapshot serializes a snapshot in the format shared by every backend.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, NewStoreError("session_snapshot", "encode", "failed to marshal snapshot", err)
	}
	return data, nil
}

// DecodeSnapshot parses data written by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, NewStoreError(
			"session_snapshot",
			"decode",
			"failed to unmarshal snapshot",
			fmt.Errorf("%w: %w", ErrInvalidEntity, err),
		)
	}
	return &s, nil
}
