package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Sanjeev-Guntha/synapse/internal/api/shared"
	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	"github.com/Sanjeev-Guntha/synapse/internal/service/auth"
	"github.com/Sanjeev-Guntha/synapse/internal/service/learning"
	"github.com/Sanjeev-Guntha/synapse/internal/store"
	"github.com/Sanjeev-Guntha/synapse/internal/task"
	"github.com/go-playground/validator/v10"
)

// StatusClientClosedRequest is the non-standard status recorded when the
// client cancels a request before it completes.
const StatusClientClosedRequest = 499

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error itself.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, learning.ErrMaterialNotFound),
		errors.Is(err, learning.ErrFlashcardNotFound),
		errors.Is(err, learning.ErrQuizNotFound),
		errors.Is(err, learning.ErrMindMapNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, learning.ErrGenerationInProgress):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, auth.ErrMissingCredentials),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidMaterialKind),
		errors.Is(err, domain.ErrInvalidMaterialStatus),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidLearningStyle),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// The client went away before the work finished.
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest

	// Generation errors
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	// Capacity errors
	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrRunnerStopped),
		errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrNotAuthenticated):
		return "Not authenticated"
	case errors.Is(err, auth.ErrMissingCredentials):
		return "Email and password are required"

	case errors.Is(err, learning.ErrMaterialNotFound):
		return "Material not found"
	case errors.Is(err, learning.ErrFlashcardNotFound):
		return "Flashcard not found"
	case errors.Is(err, learning.ErrQuizNotFound):
		return "Quiz not found"
	case errors.Is(err, learning.ErrMindMapNotFound):
		return "Mind map not found"
	case errors.Is(err, learning.ErrGenerationInProgress):
		return "Content generation is already in progress for this material"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, domain.ErrUnknownNode):
		return "Unknown mind map node"
	case errors.Is(err, domain.ErrInvalidMaterialKind):
		return "Invalid material type"
	case errors.Is(err, domain.ErrInvalidDifficulty):
		return "Invalid difficulty"
	case errors.Is(err, domain.ErrInvalidLearningStyle):
		return "Invalid learning style"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, context.Canceled):
		return "Request cancelled"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The material was rejected by the content filter"
	case errors.Is(err, context.DeadlineExceeded):
		return "Content generation timed out"
	case errors.Is(err, generation.ErrGenerationFailed):
		return "Content generation failed"

	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrRunnerStopped):
		return "Too many generation requests, try again later"
	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first offending field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "url":
		return "invalid URL"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError responds with the status and safe message for err. A
// non-empty fallback replaces the generic message for unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
