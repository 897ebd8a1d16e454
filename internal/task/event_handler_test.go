package task

import (
	"context"
	"errors"
	"testing"

	"github.com/Sanjeev-Guntha/synapse/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFactory delegates to CreateTaskFn and records the material it was asked for.
type stubFactory struct {
	CreateTaskFn   func(materialID string) (Task, error)
	LastMaterialID string
}

func (f *stubFactory) CreateTask(materialID string) (Task, error) {
	f.LastMaterialID = materialID
	return f.CreateTaskFn(materialID)
}

// stubSubmitter delegates to SubmitFn and records the submitted task.
type stubSubmitter struct {
	SubmitFn func(ctx context.Context, task Task) error
	Last     Task
}

func (s *stubSubmitter) Submit(ctx context.Context, task Task) error {
	s.Last = task
	return s.SubmitFn(ctx, task)
}

func TestTaskFactoryEventHandler_HandleEvent(t *testing.T) {
	t.Parallel()

	newEvent := func(t *testing.T) *events.TaskRequestEvent {
		t.Helper()
		e, err := events.NewContentGenerationEvent("m1")
		require.NoError(t, err)
		return e
	}

	t.Run("creates and submits a task", func(t *testing.T) {
		t.Parallel()
		task := newFakeTask()
		factory := &stubFactory{CreateTaskFn: func(string) (Task, error) { return task, nil }}
		runner := &stubSubmitter{SubmitFn: func(context.Context, Task) error { return nil }}

		h := NewTaskFactoryEventHandler(factory, runner, discardLogger())
		require.NoError(t, h.HandleEvent(context.Background(), newEvent(t)))
		assert.Equal(t, "m1", factory.LastMaterialID)
		assert.Equal(t, Task(task), runner.Last)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		t.Parallel()
		factory := &stubFactory{CreateTaskFn: func(string) (Task, error) {
			t.Fatal("factory should not be called")
			return nil, nil
		}}
		h := NewTaskFactoryEventHandler(factory, &stubSubmitter{}, discardLogger())

		e, err := events.NewTaskRequestEvent("something_else", map[string]string{})
		require.NoError(t, err)
		assert.NoError(t, h.HandleEvent(context.Background(), e))
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		t.Parallel()
		h := NewTaskFactoryEventHandler(&stubFactory{}, &stubSubmitter{}, discardLogger())

		e := newEvent(t)
		e.Payload = []byte(`{"material_id": ""}`)
		err := h.HandleEvent(context.Background(), e)
		assert.ErrorIs(t, err, events.ErrEmptyMaterialID)
	})

	t.Run("factory error", func(t *testing.T) {
		t.Parallel()
		factory := &stubFactory{CreateTaskFn: func(string) (Task, error) { return nil, ErrNilGenerator }}
		h := NewTaskFactoryEventHandler(factory, &stubSubmitter{}, discardLogger())

		err := h.HandleEvent(context.Background(), newEvent(t))
		assert.ErrorIs(t, err, ErrNilGenerator)
	})

	t.Run("submit error", func(t *testing.T) {
		t.Parallel()
		factory := &stubFactory{CreateTaskFn: func(string) (Task, error) { return newFakeTask(), nil }}
		runner := &stubSubmitter{SubmitFn: func(context.Context, Task) error { return errors.New("queue full") }}
		h := NewTaskFactoryEventHandler(factory, runner, discardLogger())

		err := h.HandleEvent(context.Background(), newEvent(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to submit task")
	})
}
