package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidMaterialKind is returned for a material kind outside pdf, docx, youtube.
	ErrInvalidMaterialKind = errors.New("invalid material kind")

	// ErrInvalidMaterialStatus is returned for an unknown material status.
	ErrInvalidMaterialStatus = errors.New("invalid material status")

	// ErrInvalidDifficulty is returned for an unknown flashcard difficulty.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidLearningStyle is returned for an unknown learning style.
	ErrInvalidLearningStyle = errors.New("invalid learning style")

	// ErrInvalidID is returned when an identifier is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid id")

	// ErrUnknownNode is returned when an edge references a node that is not on the map.
	ErrUnknownNode = errors.New("unknown mind map node")
)
