package learning

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/events"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	materialIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	materialIDLength   = 9
)

// Service holds the learning state for the single active user.
type Service struct {
	generator generation.Generator
	emitter   events.EventEmitter
	logger    *slog.Logger
	now       func() time.Time
	newID     func() (string, error)

	mu            sync.RWMutex
	materials     []*domain.Material
	materialIndex map[string]*domain.Material
	flashcards    []*domain.Flashcard
	quizzes       []*domain.Quiz
	mindMaps      map[string]*domain.MindMap
	latestMindMap string
	reviews       []domain.FlashcardReview
	inFlight      map[string]struct{}
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how material IDs are minted.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates an empty learning workspace.
func NewService(
	generator generation.Generator,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (*Service, error) {
	if generator == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "event emitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		generator:     generator,
		emitter:       emitter,
		logger:        logger.With("component", "learning_service"),
		now:           time.Now,
		newID:         func() (string, error) { return gonanoid.Generate(materialIDAlphabet, materialIDLength) },
		materialIndex: make(map[string]*domain.Material),
		mindMaps:      make(map[string]*domain.MindMap),
		inFlight:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
