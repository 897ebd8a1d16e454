package task

import "errors"

var (
	// ErrQueueFull is returned by Submit when the in-memory queue has no room.
	ErrQueueFull = errors.New("task queue is full, try again later")

	// ErrRunnerStopped is returned by Submit after Stop.
	ErrRunnerStopped = errors.New("task runner is stopped")

	ErrNilGenerator    = errors.New("content generator cannot be nil")
	ErrNilLogger       = errors.New("logger cannot be nil")
	ErrEmptyMaterialID = errors.New("material ID cannot be empty")
)
