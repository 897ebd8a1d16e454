package api

import (
	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/google/uuid"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
}

// SignupRequest defines the payload for the signup endpoint.
type SignupRequest struct {
	Name     string `json:"name"     validate:"max=100"`
	Email    string `json:"email"    validate:"max=254"`
	Password string `json:"password" validate:"max=72"`
}

// AuthResponse defines the successful response for login and signup.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
	// ExpiresAt is the RFC 3339 time the token stops being accepted.
	ExpiresAt string `json:"expires_at"`
}

// SessionResponse mirrors the persisted auth snapshot.
type SessionResponse struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// CreateMaterialRequest defines the payload for adding a material.
type CreateMaterialRequest struct {
	Title    string                `json:"title"    validate:"required,max=500"`
	Kind     domain.MaterialKind   `json:"kind"     validate:"required,oneof=pdf docx youtube"`
	Status   domain.MaterialStatus `json:"status"   validate:"omitempty,oneof=processing completed failed"`
	Generate bool                  `json:"generate"`
}

// YouTubeRequest defines the payload for adding a YouTube video as a material.
type YouTubeRequest struct {
	URL      string `json:"url"      validate:"required,url,max=2048"`
	Generate bool   `json:"generate"`
}

// ConnectNodesRequest defines the payload for adding a mind map edge.
type ConnectNodesRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// ReviewFlashcardRequest defines the payload for recording a flashcard review.
type ReviewFlashcardRequest struct {
	DurationSeconds float64 `json:"duration_seconds" validate:"gte=0,lte=86400"`
}

// SubmitQuizRequest maps question IDs to the chosen answers.
type SubmitQuizRequest struct {
	Answers map[uuid.UUID]string `json:"answers" validate:"required"`
}
