package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Sanjeev-Guntha/synapse/internal/api/shared"
	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/service/auth"
)

// Authorizer resolves a bearer token to the signed-in user.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware guards routes that need a signed-in user.
type AuthMiddleware struct {
	authorizer Authorizer
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authorizer Authorizer) *AuthMiddleware {
	return &AuthMiddleware{authorizer: authorizer}
}

// Authenticate validates the bearer token against the current session and
// adds the user to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		user, err := m.authorizer.Authorize(r.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrExpiredToken):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err)
			return
		case errors.Is(err, auth.ErrNotAuthenticated):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Session has ended", err)
			return
		case errors.Is(err, auth.ErrInvalidToken),
			errors.Is(err, auth.ErrTokenNotYetValid),
			errors.Is(err, auth.ErrMissingToken):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
				shared.WithElevatedLogLevel())
			return
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}
