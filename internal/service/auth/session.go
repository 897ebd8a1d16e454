package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/store"
)

// Session is returned after a successful login or signup.
type Session struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// SessionConfig configures a SessionService.
type SessionConfig struct {
	// Key is the namespace key the snapshot is persisted under.
	Key string
	// Delay simulates the round trip to an identity provider on login and signup.
	Delay time.Duration
}

// SessionService holds the signed-in user and keeps the persisted snapshot
// in step with it. Any non-empty email and password is accepted.
type SessionService struct {
	store  store.SessionStore
	tokens JWTService
	config SessionConfig
	logger *slog.Logger

	mu            sync.RWMutex
	user          *domain.User
	authenticated bool
}

// NewSessionService creates a signed-out SessionService. Call Restore to
// pick up a previously persisted session.
func NewSessionService(
	sessions store.SessionStore,
	tokens JWTService,
	cfg SessionConfig,
	logger *slog.Logger,
) (*SessionService, error) {
	if sessions == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	if cfg.Key == "" {
		return nil, errors.New("session key cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  sessions,
		tokens: tokens,
		config: cfg,
		logger: logger.With("component", "session_service"),
	}, nil
}

// Login signs in the user identified by email. The display name is the
// email's local part.
func (s *SessionService) Login(ctx context.Context, email, password string) (*Session, error) {
	return s.signIn(ctx, "login", domain.LocalPart(strings.TrimSpace(email)), email, password)
}

// Signup registers and signs in a user. The name is kept as given.
func (s *SessionService) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	return s.signIn(ctx, "signup", strings.TrimSpace(name), email, password)
}

func (s *SessionService) signIn(ctx context.Context, op, name, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	user := domain.NewUser(name, email)
	token, expiresAt, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, user, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.user = user
	s.authenticated = true

	s.logger.InfoContext(ctx, "user signed in", "operation", op, "user_id", user.ID)

	return &Session{User: cloneUser(user), Token: token, ExpiresAt: expiresAt}, nil
}

// Logout clears the signed-in user and removes the persisted snapshot.
// Outstanding tokens stop being accepted.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx, s.config.Key); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear session", "error", err)
		return fmt.Errorf("logout: failed to clear session: %w", err)
	}
	if s.user != nil {
		s.logger.InfoContext(ctx, "user signed out", "user_id", s.user.ID)
	}
	s.user = nil
	s.authenticated = false
	return nil
}

// UpdateProfile merges the supplied fields into the current user. Without a
// signed-in user it does nothing and returns (nil, nil).
func (s *SessionService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, nil
	}

	updated := update.Apply(*s.user)
	if err := s.persist(ctx, &updated, s.authenticated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.user = &updated

	s.logger.InfoContext(ctx, "profile updated", "user_id", updated.ID)
	return cloneUser(&updated), nil
}

// Current returns a copy of the signed-in user.
func (s *SessionService) Current() (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, s.authenticated
	}
	return cloneUser(s.user), s.authenticated
}

// Restore loads the persisted snapshot. A missing snapshot leaves the service signed out.
func (s *SessionService) Restore(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx, s.config.Key)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		s.logger.DebugContext(ctx, "no persisted session")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = snapshot.User
	s.authenticated = snapshot.IsAuthenticated && snapshot.User != nil
	if s.user != nil {
		s.logger.InfoContext(ctx, "session restored",
			"user_id", s.user.ID,
			"authenticated", s.authenticated)
	}
	return nil
}

// Authorize checks a bearer token against the current session and returns the user.
func (s *SessionService) Authorize(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, ok := s.Current()
	if !ok || user == nil || user.ID != claims.UserID {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// persist must be called with s.mu held.
func (s *SessionService) persist(ctx context.Context, user *domain.User, authenticated bool) error {
	if err := s.store.Save(ctx, s.config.Key, store.Snapshot{User: user, IsAuthenticated: authenticated}); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist session", "error", err)
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func (s *SessionService) wait(ctx context.Context) error {
	if s.config.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.config.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}
