package learning

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Service. Callers check them with errors.Is.
var (
	// ErrMaterialNotFound indicates that no material has the requested ID.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrFlashcardNotFound indicates that no flashcard has the requested ID.
	ErrFlashcardNotFound = errors.New("flashcard not found")

	// ErrQuizNotFound indicates that no quiz has the requested ID.
	ErrQuizNotFound = errors.New("quiz not found")

	// ErrMindMapNotFound indicates that no mind map has been generated yet.
	ErrMindMapNotFound = errors.New("mind map not found")

	// ErrGenerationInProgress is returned when content for the material is already being generated.
	ErrGenerationInProgress = errors.New("content generation already in progress")
)

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "add_material", "generate_content")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("learning service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("learning service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err. Sentinel errors of this package pass through unwrapped.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrMaterialNotFound,
		ErrFlashcardNotFound,
		ErrQuizNotFound,
		ErrMindMapNotFound,
		ErrGenerationInProgress,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
