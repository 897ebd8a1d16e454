package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TypeContentGeneration requests background generation of study content for a material.
const TypeContentGeneration = "content_generation"

// ErrEmptyMaterialID is returned when a generation event names no material.
var ErrEmptyMaterialID = errors.New("material ID cannot be empty")

// TaskRequestEvent represents a request to create a background task.
// It contains the necessary information for task creation without
// direct dependencies on the task package.
type TaskRequestEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates the task type that should be created
	Type string `json:"type"`

	// Payload contains the task-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// ContentGenerationPayload is the payload of a TypeContentGeneration event.
type ContentGenerationPayload struct {
	MaterialID string `json:"material_id"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskRequestEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// ContentGeneration decodes the payload of a content generation event.
func (e *TaskRequestEvent) ContentGeneration() (ContentGenerationPayload, error) {
	var p ContentGenerationPayload
	if e.Type != TypeContentGeneration {
		return p, fmt.Errorf("event %s has type %q, not %q", e.ID, e.Type, TypeContentGeneration)
	}
	if err := e.UnmarshalPayload(&p); err != nil {
		return p, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if p.MaterialID == "" {
		return p, ErrEmptyMaterialID
	}
	return p, nil
}

// NewTaskRequestEvent creates a new TaskRequestEvent with the specified type and payload.
func NewTaskRequestEvent(eventType string, payload any) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// NewContentGenerationEvent creates the event that asks for a material's content to be generated.
func NewContentGenerationEvent(materialID string) (*TaskRequestEvent, error) {
	if materialID == "" {
		return nil, ErrEmptyMaterialID
	}
	return NewTaskRequestEvent(TypeContentGeneration, ContentGenerationPayload{MaterialID: materialID})
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to the handlers subscribed to its type.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
