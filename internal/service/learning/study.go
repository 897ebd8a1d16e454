package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/google/uuid"
)

// Flashcards returns the flashcards matching filter in creation order.
func (s *Service) Flashcards(ctx context.Context, filter domain.FlashcardFilter) []*domain.Flashcard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Flashcard, 0, len(s.flashcards))
	for _, c := range s.flashcards {
		if filter.Matches(c) {
			out = append(out, ptr(*c))
		}
	}
	return out
}

// ReviewFlashcard records that the user studied a flashcard for duration.
func (s *Service) ReviewFlashcard(ctx context.Context, flashcardID uuid.UUID, duration time.Duration) error {
	if duration < 0 {
		return fmt.Errorf("%w: review duration cannot be negative", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasFlashcard(flashcardID) {
		return ErrFlashcardNotFound
	}
	s.reviews = append(s.reviews, domain.FlashcardReview{
		FlashcardID: flashcardID,
		Duration:    duration,
		ReviewedAt:  s.now(),
	})
	return nil
}

func (s *Service) hasFlashcard(id uuid.UUID) bool {
	for _, c := range s.flashcards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Quizzes returns every quiz in creation order.
func (s *Service) Quizzes(ctx context.Context) []*domain.Quiz {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Quiz, len(s.quizzes))
	for i, q := range s.quizzes {
		out[i] = q.Clone()
	}
	return out
}

// Quiz returns the quiz with the given ID.
func (s *Service) Quiz(ctx context.Context, id uuid.UUID) (*domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := s.findQuiz(id)
	if q == nil {
		return nil, ErrQuizNotFound
	}
	return q.Clone(), nil
}

func (s *Service) findQuiz(id uuid.UUID) *domain.Quiz {
	for _, q := range s.quizzes {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// SubmitQuiz grades answers keyed by question ID and marks the quiz completed.
// Submitting again replaces the previous attempt.
func (s *Service) SubmitQuiz(ctx context.Context, quizID uuid.UUID, answers map[uuid.UUID]string) (*domain.QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.findQuiz(quizID)
	if q == nil {
		return nil, ErrQuizNotFound
	}

	known := make(map[uuid.UUID]struct{}, len(q.Questions))
	for _, question := range q.Questions {
		known[question.ID] = struct{}{}
	}
	for id := range answers {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: quiz %s has no question %s", domain.ErrValidation, quizID, id)
		}
	}

	result := q.Grade(answers, s.now())
	s.logger.InfoContext(ctx, "quiz submitted",
		"quiz_id", quizID,
		"score", result.Score,
		"correct", result.Correct,
		"total", result.Total)
	return &result, nil
}

// MindMap returns the mind map generated for a material.
func (s *Service) MindMap(ctx context.Context, materialID string) (*domain.MindMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.materialIndex[materialID]; !ok {
		return nil, ErrMaterialNotFound
	}
	m, ok := s.mindMaps[materialID]
	if !ok {
		return nil, ErrMindMapNotFound
	}
	return m.Clone(), nil
}

// LatestMindMap returns the most recently generated mind map.
func (s *Service) LatestMindMap(ctx context.Context) (*domain.MindMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mindMaps[s.latestMindMap]
	if !ok {
		return nil, ErrMindMapNotFound
	}
	return m.Clone(), nil
}

// ConnectNodes adds an edge between two nodes of a material's mind map.
func (s *Service) ConnectNodes(ctx context.Context, materialID, source, target string) (*domain.MindMapEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.materialIndex[materialID]; !ok {
		return nil, ErrMaterialNotFound
	}
	m, ok := s.mindMaps[materialID]
	if !ok {
		return nil, ErrMindMapNotFound
	}
	edge, err := m.Connect(source, target)
	if err != nil {
		return nil, err
	}
	return &edge, nil
}
