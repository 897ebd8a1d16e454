package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can be in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks
	// If zero, defaults to 5 minutes
	StuckTaskCheckInterval time.Duration

	// FinishedTaskRetention is how long completed and failed task records are
	// kept before the monitor prunes them. If zero, defaults to 1 hour
	FinishedTaskRetention time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
		FinishedTaskRetention:  time.Hour,
	}
}

// TaskRunner manages background task processing
type TaskRunner struct {
	store      TaskStore
	taskChan   chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)

	// mu guards stopped and sends on taskChan so Stop can close it safely.
	mu      sync.RWMutex
	stopped bool

	// queued holds the IDs currently buffered in taskChan.
	queuedMu sync.Mutex
	queued   map[uuid.UUID]struct{}
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(store TaskStore, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 1
	}
	if config.FinishedTaskRetention == 0 {
		config.FinishedTaskRetention = time.Hour
	}

	ctx, cancel := context.WithCancel(context.Background())
	logger = logger.With("component", "task_runner")

	return &TaskRunner{
		store:      store,
		taskChan:   make(chan Task, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		queued:     make(map[uuid.UUID]struct{}),
		errHandler: func(task Task, err error) {
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit records the task and adds it to the queue.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return ErrRunnerStopped
	}

	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	r.markQueued(task.ID())
	select {
	case r.taskChan <- task:
		return nil
	default:
		r.unmarkQueued(task.ID())
		if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, ErrQueueFull.Error()); err != nil {
			r.logger.Error("failed to mark rejected task", "task_id", task.ID(), "error", err)
		}
		return ErrQueueFull
	}
}

// Start recovers unfinished tasks and starts the workers and the stuck task monitor.
func (r *TaskRunner) Start() error {
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.stuckTaskMonitor()

	r.logger.Info("task runner started", "workers", r.config.WorkerCount, "queue_size", r.config.QueueSize)
	return nil
}

// Stop cancels running tasks, waits for the workers to exit and rejects further submissions.
// It is safe to call more than once.
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stopped {
		r.stopped = true
		close(r.taskChan)
		r.logger.Info("task runner stopped")
	}
}

// Recover requeues pending tasks and resets tasks left in processing.
// Tasks already waiting in the queue are skipped.
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	pendingTasks, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	// Any age: these were interrupted by a restart.
	processingTasks, err := r.store.GetProcessingTasks(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	if len(pendingTasks)+len(processingTasks) > 0 {
		r.logger.Info("recovering unfinished tasks",
			"pending_count", len(pendingTasks),
			"processing_count", len(processingTasks))
	}

	for _, task := range pendingTasks {
		r.requeue(task, "pending")
	}

	for _, task := range processingTasks {
		if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusPending, "Reset after recovery"); err != nil {
			r.logger.Error("failed to reset processing task status",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
			continue
		}
		r.requeue(task, "processing")
	}

	return nil
}

func (r *TaskRunner) requeue(task Task, from string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return false
	}
	if !r.markQueued(task.ID()) {
		r.logger.Debug("task already queued", "task_id", task.ID(), "previous_status", from)
		return false
	}

	select {
	case r.taskChan <- task:
		return true
	default:
		r.unmarkQueued(task.ID())
		r.logger.Error("failed to requeue task, queue is full",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"previous_status", from)
		return false
	}
}

// markQueued records id as buffered. It reports false if it already was.
func (r *TaskRunner) markQueued(id uuid.UUID) bool {
	r.queuedMu.Lock()
	defer r.queuedMu.Unlock()
	if _, ok := r.queued[id]; ok {
		return false
	}
	r.queued[id] = struct{}{}
	return true
}

func (r *TaskRunner) unmarkQueued(id uuid.UUID) {
	r.queuedMu.Lock()
	delete(r.queued, id)
	r.queuedMu.Unlock()
}

func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-r.taskChan:
			if !ok {
				r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}
			r.unmarkQueued(task.ID())
			r.processTask(task, id)
		}
	}
}

func (r *TaskRunner) processTask(task Task, workerID int) {
	// Status writes use a detached context so a cancelled task is still recorded.
	ctx := context.Background()
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusProcessing, ""); err != nil {
		logger.Error("failed to update task status to processing", "error", err)
		return
	}

	logger.Info("processing task")
	start := time.Now()

	if err := task.Execute(r.ctx); err != nil {
		logger.Error("task execution failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
			logger.Error("failed to update task status to failed", "error", updateErr)
		}
		r.errHandler(task, err)
		return
	}

	logger.Info("task completed successfully", "duration_ms", time.Since(start).Milliseconds())
	if updateErr := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusCompleted, ""); updateErr != nil {
		logger.Error("failed to update task status to completed", "error", updateErr)
	}
}

// stuckTaskMonitor periodically resets and requeues tasks that have been
// processing for longer than StuckTaskAge, and prunes finished records.
func (r *TaskRunner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-ticker.C:
			r.resetStuckTasks(context.Background())
			r.pruneFinishedTasks(context.Background())
		}
	}
}

func (r *TaskRunner) resetStuckTasks(ctx context.Context) {
	stuckTasks, err := r.store.GetProcessingTasks(ctx, r.config.StuckTaskAge)
	if err != nil {
		r.logger.Error("failed to check for stuck tasks", "error", err)
		return
	}
	if len(stuckTasks) == 0 {
		return
	}

	r.logger.Info("found stuck tasks", "count", len(stuckTasks))
	for _, task := range stuckTasks {
		if err := r.store.UpdateTaskStatus(ctx, task.ID(), TaskStatusPending,
			"Reset after being stuck in processing state"); err != nil {
			r.logger.Error("failed to reset stuck task status",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
			continue
		}
		if r.requeue(task, "stuck") {
			r.logger.Info("requeued stuck task", "task_id", task.ID(), "task_type", task.Type())
		}
	}
}

func (r *TaskRunner) pruneFinishedTasks(ctx context.Context) {
	n, err := r.store.DeleteFinishedTasks(ctx, r.config.FinishedTaskRetention)
	if err != nil {
		r.logger.Error("failed to prune finished tasks", "error", err)
		return
	}
	if n > 0 {
		r.logger.Debug("pruned finished tasks", "count", n)
	}
}
