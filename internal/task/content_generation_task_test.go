package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/events"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	"github.com/Sanjeev-Guntha/synapse/internal/service/learning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContentGenerator delegates to GenerateContentFn.
type stubContentGenerator struct {
	GenerateContentFn func(ctx context.Context, materialID string) (*learning.GenerationResult, error)
}

func (g *stubContentGenerator) GenerateContent(ctx context.Context, materialID string) (*learning.GenerationResult, error) {
	return g.GenerateContentFn(ctx, materialID)
}

func emptyResult() *learning.GenerationResult {
	return &learning.GenerationResult{Quiz: &domain.Quiz{}, MindMap: &domain.MindMap{}}
}

func TestNewContentGenerationTask_Validation(t *testing.T) {
	t.Parallel()
	gen := &stubContentGenerator{}

	_, err := NewContentGenerationTask("m1", nil, discardLogger())
	assert.ErrorIs(t, err, ErrNilGenerator)

	_, err = NewContentGenerationTask("m1", gen, nil)
	assert.ErrorIs(t, err, ErrNilLogger)

	_, err = NewContentGenerationTask("", gen, discardLogger())
	assert.ErrorIs(t, err, ErrEmptyMaterialID)

	task, err := NewContentGenerationTask("m1", gen, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, TaskTypeContentGeneration, task.Type())
	assert.Equal(t, TaskStatusPending, task.Status())
	assert.Equal(t, "m1", task.MaterialID())

	var payload events.ContentGenerationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "m1", payload.MaterialID)
}

func TestContentGenerationTask_Execute(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var got string
		gen := &stubContentGenerator{GenerateContentFn: func(_ context.Context, id string) (*learning.GenerationResult, error) {
			got = id
			return emptyResult(), nil
		}}
		task, err := NewContentGenerationTask("m1", gen, discardLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, "m1", got)
		assert.Equal(t, TaskStatusCompleted, task.Status())
	})

	t.Run("generator error", func(t *testing.T) {
		t.Parallel()
		gen := &stubContentGenerator{GenerateContentFn: func(context.Context, string) (*learning.GenerationResult, error) {
			return nil, learning.ErrMaterialNotFound
		}}
		task, err := NewContentGenerationTask("m1", gen, discardLogger())
		require.NoError(t, err)

		err = task.Execute(context.Background())
		assert.ErrorIs(t, err, learning.ErrMaterialNotFound)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		called := false
		gen := &stubContentGenerator{GenerateContentFn: func(context.Context, string) (*learning.GenerationResult, error) {
			called = true
			return emptyResult(), nil
		}}
		task, err := NewContentGenerationTask("m1", gen, discardLogger())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err = task.Execute(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})
}

// TestContentGeneration_EndToEnd wires the learning service, the event emitter,
// the handler and the runner the way the server does.
func TestContentGeneration_EndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := discardLogger()

	cfg := generation.DefaultSimulatedConfig()
	cfg.Delay = 0
	gen, err := generation.NewSimulatedGenerator(cfg, logger)
	require.NoError(t, err)

	emitter := events.NewInMemoryEventEmitter(logger)
	svc, err := learning.NewService(gen, emitter, logger)
	require.NoError(t, err)

	store := NewMemoryTaskStore()
	runner := NewTaskRunner(store, DefaultTaskRunnerConfig(), logger)
	handler := NewTaskFactoryEventHandler(NewContentGenerationTaskFactory(svc, logger), runner, logger)
	emitter.Subscribe(events.TypeContentGeneration, handler)
	require.NoError(t, runner.Start())
	t.Cleanup(runner.Stop)

	m, err := svc.AddUpload(ctx, "notes.pdf")
	require.NoError(t, err)
	require.NoError(t, svc.RequestGeneration(ctx, m.ID))

	require.Eventually(t, func() bool {
		got, err := svc.Material(ctx, m.ID)
		return err == nil && got.Status == domain.MaterialStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	assert.Len(t, svc.Flashcards(ctx, domain.FlashcardFilter{MaterialID: m.ID}), cfg.FlashcardCount)
}

func TestContentGeneration_QueuedBeforeStartRunsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := discardLogger()

	cfg := generation.DefaultSimulatedConfig()
	cfg.Delay = 0
	gen, err := generation.NewSimulatedGenerator(cfg, logger)
	require.NoError(t, err)
	svc, err := learning.NewService(gen, events.NewInMemoryEventEmitter(logger), logger)
	require.NoError(t, err)

	m, err := svc.AddUpload(ctx, "notes.pdf")
	require.NoError(t, err)

	store := NewMemoryTaskStore()
	runnerCfg := DefaultTaskRunnerConfig()
	runnerCfg.WorkerCount = 1
	runner := NewTaskRunner(store, runnerCfg, logger)

	task, err := NewContentGenerationTask(m.ID, svc, logger)
	require.NoError(t, err)
	require.NoError(t, runner.Submit(ctx, task))
	require.NoError(t, runner.Start())
	t.Cleanup(runner.Stop)

	waitForStatus(t, store, task.ID(), TaskStatusCompleted)
	assert.Empty(t, runner.taskChan)

	assert.Len(t, svc.Flashcards(ctx, domain.FlashcardFilter{MaterialID: m.ID}), 10)
	quizzes := 0
	for _, q := range svc.Quizzes(ctx) {
		if q.MaterialID == m.ID {
			quizzes++
		}
	}
	assert.Equal(t, 1, quizzes)
}

func TestContentGenerationTaskFactory(t *testing.T) {
	t.Parallel()
	factory := NewContentGenerationTaskFactory(&stubContentGenerator{}, discardLogger())

	task, err := factory.CreateTask("m1")
	require.NoError(t, err)
	assert.Equal(t, TaskTypeContentGeneration, task.Type())

	_, err = factory.CreateTask("")
	assert.True(t, errors.Is(err, ErrEmptyMaterialID))
}
