package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/api/shared"
	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/service/auth"
)

// AuthService is the session behaviour the auth endpoints need.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Signup(ctx context.Context, name, email, password string) (*auth.Session, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	sessions AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(sessions AuthService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to sign in")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toAuthResponse(session))
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.sessions.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create account")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, toAuthResponse(session))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me. It reports the user the auth middleware resolved.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, auth.ErrNotAuthenticated, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{User: user, IsAuthenticated: true})
}

// UpdateProfile handles PATCH /api/auth/profile. Only the supplied fields change.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update domain.ProfileUpdate
	if !decodeAndValidate(w, r, &update) {
		return
	}

	user, err := h.sessions.UpdateProfile(r.Context(), update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}
	if user == nil {
		HandleAPIError(w, r, auth.ErrNotAuthenticated, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

func toAuthResponse(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:      s.User,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
