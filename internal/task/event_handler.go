package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sanjeev-Guntha/synapse/internal/events"
)

// TaskFactory creates a content generation task for a material.
type TaskFactory interface {
	CreateTask(materialID string) (Task, error)
}

// TaskSubmitter accepts tasks for background execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler implements events.EventHandler by turning content
// generation events into tasks and submitting them to a runner.
type TaskFactoryEventHandler struct {
	taskFactory TaskFactory
	taskRunner  TaskSubmitter
	logger      *slog.Logger
}

var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)

// NewTaskFactoryEventHandler creates a new event handler that uses the given task factory
// to create tasks, and submits them to the provided task runner.
func NewTaskFactoryEventHandler(
	taskFactory TaskFactory,
	taskRunner TaskSubmitter,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent creates and submits a task for content generation events.
// Events of other types are ignored.
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != events.TypeContentGeneration {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	payload, err := event.ContentGeneration()
	if err != nil {
		h.logger.Error("invalid content generation event", "error", err, "event_id", event.ID)
		return fmt.Errorf("invalid content generation event: %w", err)
	}
	log := h.logger.With("material_id", payload.MaterialID, "event_id", event.ID)

	task, err := h.taskFactory.CreateTask(payload.MaterialID)
	if err != nil {
		log.Error("failed to create task", "error", err)
		return fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("submitting task to runner", "task_id", task.ID())
	if err := h.taskRunner.Submit(ctx, task); err != nil {
		log.Error("failed to submit task", "error", err, "task_id", task.ID())
		return fmt.Errorf("failed to submit task: %w", err)
	}

	log.Info("task created and submitted successfully", "task_id", task.ID())
	return nil
}
