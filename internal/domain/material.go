package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// MaterialKind is the type of source a material was created from.
type MaterialKind string

// Supported material kinds.
const (
	MaterialKindPDF     MaterialKind = "pdf"
	MaterialKindDOCX    MaterialKind = "docx"
	MaterialKindYouTube MaterialKind = "youtube"
)

// MaterialStatus represents the processing state of a material.
type MaterialStatus string

// Possible material status values.
const (
	MaterialStatusProcessing MaterialStatus = "processing"
	MaterialStatusCompleted  MaterialStatus = "completed"
	MaterialStatusFailed     MaterialStatus = "failed"
)

// Material is a learning source submitted by the user.
type Material struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Kind       MaterialKind   `json:"kind"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Status     MaterialStatus `json:"status"`
}

// Validate checks if the Material has valid data.
func (m *Material) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: material ID cannot be empty", ErrValidation)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: material title cannot be empty", ErrValidation)
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: %w %q", ErrValidation, ErrInvalidMaterialKind, m.Kind)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("%w: %w %q", ErrValidation, ErrInvalidMaterialStatus, m.Status)
	}
	return nil
}

// Valid reports whether k is a supported kind.
func (k MaterialKind) Valid() bool {
	switch k {
	case MaterialKindPDF, MaterialKindDOCX, MaterialKindYouTube:
		return true
	default:
		return false
	}
}

// Valid reports whether s is a known status.
func (s MaterialStatus) Valid() bool {
	switch s {
	case MaterialStatusProcessing, MaterialStatusCompleted, MaterialStatusFailed:
		return true
	default:
		return false
	}
}

// KindFromFilename picks the kind of an uploaded document from its extension.
// Anything that is not a PDF is treated as a Word document.
func KindFromFilename(name string) MaterialKind {
	if strings.EqualFold(path.Ext(name), ".pdf") {
		return MaterialKindPDF
	}
	return MaterialKindDOCX
}

// YouTubeTitle is the display title for a material created from a video link.
func YouTubeTitle(link string) string {
	return "YouTube: " + link
}
