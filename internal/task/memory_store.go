package task

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/store"
	"github.com/google/uuid"
)

// MemoryTaskStore keeps task state in process memory.
type MemoryTaskStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
	now     func() time.Time
}

var _ TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		records: make(map[uuid.UUID]*Record),
		now:     time.Now,
	}
}

// SaveTask implements TaskStore.
func (s *MemoryTaskStore) SaveTask(_ context.Context, task Task) error {
	if task == nil || task.ID() == uuid.Nil {
		return store.NewStoreError("task", "save", "task has no id", store.ErrInvalidEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[task.ID()] = &Record{
		Task:      task,
		Status:    TaskStatusPending,
		UpdatedAt: s.now(),
	}
	return nil
}

// UpdateTaskStatus implements TaskStore.
func (s *MemoryTaskStore) UpdateTaskStatus(_ context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[taskID]
	if !ok {
		return store.ErrTaskNotFound
	}
	rec.Status = status
	rec.Error = errorMsg
	rec.UpdatedAt = s.now()
	return nil
}

// GetTask implements TaskStore.
func (s *MemoryTaskStore) GetTask(_ context.Context, taskID uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[taskID]
	if !ok {
		return Record{}, store.ErrTaskNotFound
	}
	return *rec, nil
}

// GetPendingTasks implements TaskStore. Tasks are returned oldest first.
func (s *MemoryTaskStore) GetPendingTasks(_ context.Context) ([]Task, error) {
	return s.byStatus(TaskStatusPending, 0), nil
}

// GetProcessingTasks implements TaskStore.
func (s *MemoryTaskStore) GetProcessingTasks(_ context.Context, olderThan time.Duration) ([]Task, error) {
	return s.byStatus(TaskStatusProcessing, olderThan), nil
}

// DeleteFinishedTasks implements TaskStore.
func (s *MemoryTaskStore) DeleteFinishedTasks(_ context.Context, olderThan time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-olderThan)
	removed := 0
	for id, rec := range s.records {
		if rec.Status != TaskStatusCompleted && rec.Status != TaskStatusFailed {
			continue
		}
		if rec.UpdatedAt.After(cutoff) {
			continue
		}
		delete(s.records, id)
		removed++
	}
	return removed, nil
}

func (s *MemoryTaskStore) byStatus(status TaskStatus, olderThan time.Duration) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-olderThan)
	matched := make([]*Record, 0)
	for _, rec := range s.records {
		if rec.Status != status {
			continue
		}
		if olderThan > 0 && rec.UpdatedAt.After(cutoff) {
			continue
		}
		matched = append(matched, rec)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
	})

	tasks := make([]Task, len(matched))
	for i, rec := range matched {
		tasks[i] = rec.Task
	}
	return tasks
}
