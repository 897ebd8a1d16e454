package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyTitle is returned when a material has no title to prompt with.
	ErrEmptyTitle = errors.New("material title cannot be empty")
)
