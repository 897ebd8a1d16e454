package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Sanjeev-Guntha/synapse/internal/events"
	"github.com/Sanjeev-Guntha/synapse/internal/service/learning"
	"github.com/google/uuid"
)

// ContentGenerator produces and stores study content for a material.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, materialID string) (*learning.GenerationResult, error)
}

// ContentGenerationTask generates flashcards, a quiz and a mind map for one material.
type ContentGenerationTask struct {
	id         uuid.UUID
	materialID string
	generator  ContentGenerator
	logger     *slog.Logger

	mu     sync.Mutex
	status TaskStatus
}

var _ Task = (*ContentGenerationTask)(nil)

// NewContentGenerationTask creates a pending task for the material.
func NewContentGenerationTask(
	materialID string,
	generator ContentGenerator,
	logger *slog.Logger,
) (*ContentGenerationTask, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if materialID == "" {
		return nil, ErrEmptyMaterialID
	}

	return &ContentGenerationTask{
		id:         uuid.New(),
		materialID: materialID,
		generator:  generator,
		logger:     logger.With("task_type", TaskTypeContentGeneration, "material_id", materialID),
		status:     TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ContentGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ContentGenerationTask) Type() string {
	return TaskTypeContentGeneration
}

// MaterialID returns the material the task generates content for.
func (t *ContentGenerationTask) MaterialID() string {
	return t.materialID
}

// Payload returns the task data as a byte slice
func (t *ContentGenerationTask) Payload() []byte {
	data, err := json.Marshal(events.ContentGenerationPayload{MaterialID: t.materialID})
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *ContentGenerationTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *ContentGenerationTask) setStatus(s TaskStatus) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Execute runs generation for the material. The material's own status is
// maintained by the generator.
func (t *ContentGenerationTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	t.logger.Info("starting content generation task")

	if err := ctx.Err(); err != nil {
		t.setStatus(TaskStatusFailed)
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	result, err := t.generator.GenerateContent(ctx, t.materialID)
	if err != nil {
		t.setStatus(TaskStatusFailed)
		t.logger.Error("failed to generate content", "error", err)
		return fmt.Errorf("failed to generate content: %w", err)
	}

	t.setStatus(TaskStatusCompleted)
	t.logger.Info("content generation task completed",
		"flashcards_generated", len(result.Flashcards),
		"quiz_questions", len(result.Quiz.Questions),
		"mind_map_nodes", len(result.MindMap.Nodes))
	return nil
}

// ContentGenerationTaskFactory creates ContentGenerationTask instances
type ContentGenerationTaskFactory struct {
	generator ContentGenerator
	logger    *slog.Logger
}

// NewContentGenerationTaskFactory creates a new factory for ContentGenerationTasks
func NewContentGenerationTaskFactory(generator ContentGenerator, logger *slog.Logger) *ContentGenerationTaskFactory {
	return &ContentGenerationTaskFactory{
		generator: generator,
		logger:    logger.With("component", "content_generation_task_factory"),
	}
}

// CreateTask creates a new ContentGenerationTask for the specified material
func (f *ContentGenerationTaskFactory) CreateTask(materialID string) (Task, error) {
	task, err := NewContentGenerationTask(materialID, f.generator, f.logger)
	if err != nil {
		return nil, err
	}
	return task, nil
}
