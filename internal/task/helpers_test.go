package task

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// fakeTask is a Task whose behaviour is supplied by ExecuteFn.
type fakeTask struct {
	id        uuid.UUID
	ExecuteFn func(ctx context.Context) error
}

func newFakeTask() *fakeTask {
	return &fakeTask{
		id:        uuid.New(),
		ExecuteFn: func(context.Context) error { return nil },
	}
}

func (t *fakeTask) ID() uuid.UUID                     { return t.id }
func (t *fakeTask) Type() string                      { return "fake" }
func (t *fakeTask) Payload() []byte                   { return []byte(`{}`) }
func (t *fakeTask) Status() TaskStatus                { return TaskStatusPending }
func (t *fakeTask) Execute(ctx context.Context) error { return t.ExecuteFn(ctx) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
