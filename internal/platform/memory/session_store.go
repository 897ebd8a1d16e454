package memory

import (
	"context"
	"sync"

	"github.com/Sanjeev-Guntha/synapse/internal/store"
)

// SessionStore keeps encoded snapshots in a map. Snapshots are stored in
// their encoded form so callers never share memory with the store.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{data: make(map[string][]byte)}
}

// Load implements store.SessionStore.
func (s *SessionStore) Load(ctx context.Context, key string) (*store.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrSnapshotNotFound
	}
	return store.DecodeSnapshot(data)
}

// Save implements store.SessionStore.
func (s *SessionStore) Save(ctx context.Context, key string, snapshot store.Snapshot) error {
	data, err := store.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

// Clear implements store.SessionStore.
func (s *SessionStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
