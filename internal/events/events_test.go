package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskRequestEvent(t *testing.T) {
	type testPayload struct {
		ID     uuid.UUID `json:"id"`
		Action string    `json:"action"`
	}

	payload := testPayload{
		ID:     uuid.New(),
		Action: "test_action",
	}

	event, err := NewTaskRequestEvent("test_event", payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "test_event", event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded testPayload
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestContentGenerationEvent(t *testing.T) {
	event, err := NewContentGenerationEvent("abc123xyz")
	require.NoError(t, err)
	assert.Equal(t, TypeContentGeneration, event.Type)

	payload, err := event.ContentGeneration()
	require.NoError(t, err)
	assert.Equal(t, "abc123xyz", payload.MaterialID)

	_, err = NewContentGenerationEvent("")
	assert.ErrorIs(t, err, ErrEmptyMaterialID)
}

func TestContentGeneration_RejectsBadEvents(t *testing.T) {
	other, err := NewTaskRequestEvent("other", map[string]string{"material_id": "x"})
	require.NoError(t, err)
	_, err = other.ContentGeneration()
	assert.Error(t, err)

	empty, err := NewTaskRequestEvent(TypeContentGeneration, map[string]string{})
	require.NoError(t, err)
	_, err = empty.ContentGeneration()
	assert.ErrorIs(t, err, ErrEmptyMaterialID)

	garbled := &TaskRequestEvent{Type: TypeContentGeneration, Payload: json.RawMessage(`[1,2]`)}
	_, err = garbled.ContentGeneration()
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *TaskRequestEvent
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandler(t *testing.T) {
	handler := &MockEventHandler{}

	event, err := NewTaskRequestEvent("test_type", map[string]string{"key": "value"})
	require.NoError(t, err)

	assert.NoError(t, handler.HandleEvent(context.Background(), event))
	assert.Equal(t, 1, handler.HandledCount)
	assert.Equal(t, event, handler.LastEvent)

	expectedErr := errors.New("handler error")
	handler.HandlerError = expectedErr
	assert.Equal(t, expectedErr, handler.HandleEvent(context.Background(), event))
	assert.Equal(t, 2, handler.HandledCount)
}
