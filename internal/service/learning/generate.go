package learning

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	"github.com/google/uuid"
)

// GenerationResult is what one successful generation added to the workspace.
type GenerationResult struct {
	Material   *domain.Material    `json:"material"`
	Flashcards []*domain.Flashcard `json:"flashcards"`
	Quiz       *domain.Quiz        `json:"quiz"`
	MindMap    *domain.MindMap     `json:"mind_map"`
}

// GenerateContent produces flashcards, a quiz and a mind map for the material.
// On success the material is marked completed, the new flashcards and quiz are
// appended and the material's mind map is replaced. On failure the material is
// marked failed and nothing else changes. If ctx is cancelled the material
// keeps its previous status and the context error is returned. A second call
// for the same material while one is running returns ErrGenerationInProgress.
func (s *Service) GenerateContent(ctx context.Context, materialID string) (*GenerationResult, error) {
	material, previous, err := s.beginGeneration(materialID)
	if err != nil {
		return nil, err
	}
	defer s.endGeneration(materialID)

	log := s.logger.With("material_id", materialID)
	log.InfoContext(ctx, "generating content")

	content, err := s.generator.Generate(ctx, material)
	if err == nil {
		err = validateContent(content)
	}
	if errors.Is(err, context.Canceled) {
		s.setStatus(materialID, previous)
		log.InfoContext(ctx, "content generation cancelled", "status", previous)
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if err != nil {
		s.setStatus(materialID, domain.MaterialStatusFailed)
		log.ErrorContext(ctx, "content generation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	result := s.applyContent(material.ID, content)
	log.InfoContext(ctx, "content generated",
		"flashcards", len(result.Flashcards),
		"questions", len(result.Quiz.Questions))
	return result, nil
}

// beginGeneration marks the material in flight and returns a copy of it
// together with the status it had before.
func (s *Service) beginGeneration(materialID string) (*domain.Material, domain.MaterialStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.materialIndex[materialID]
	if !ok {
		return nil, "", ErrMaterialNotFound
	}
	if _, busy := s.inFlight[materialID]; busy {
		return nil, "", ErrGenerationInProgress
	}
	s.inFlight[materialID] = struct{}{}
	previous := m.Status
	m.Status = domain.MaterialStatusProcessing

	out := *m
	return &out, previous, nil
}

func (s *Service) endGeneration(materialID string) {
	s.mu.Lock()
	delete(s.inFlight, materialID)
	s.mu.Unlock()
}

func (s *Service) setStatus(materialID string, status domain.MaterialStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.materialIndex[materialID]; ok {
		m.Status = status
	}
}

// validateContent rejects content that would break workspace invariants.
func validateContent(c *generation.Content) error {
	if c == nil {
		return fmt.Errorf("%w: generator returned no content", generation.ErrInvalidResponse)
	}
	for i, q := range c.Quiz.Questions {
		if q.Kind == domain.QuestionKindMultipleChoice && !slices.Contains(q.Options, q.CorrectAnswer) {
			return fmt.Errorf("%w: question %d answer is not among its options", generation.ErrInvalidResponse, i)
		}
	}
	mm := domain.MindMap{Nodes: c.MindMap.Nodes}
	for _, e := range c.MindMap.Edges {
		if !mm.HasNode(e.Source) || !mm.HasNode(e.Target) {
			return fmt.Errorf("%w: edge %s references an unknown node", generation.ErrInvalidResponse, e.ID)
		}
	}
	return nil
}

// applyContent commits generated content in one critical section.
func (s *Service) applyContent(materialID string, c *generation.Content) *GenerationResult {
	cards := make([]*domain.Flashcard, 0, len(c.Flashcards))
	for _, d := range c.Flashcards {
		cards = append(cards, &domain.Flashcard{
			ID:         uuid.New(),
			MaterialID: materialID,
			Front:      d.Front,
			Back:       d.Back,
			Difficulty: d.Difficulty,
			Topic:      d.Topic,
		})
	}

	quiz := &domain.Quiz{
		ID:         uuid.New(),
		MaterialID: materialID,
		Title:      c.Quiz.Title,
		Questions:  make([]*domain.QuizQuestion, 0, len(c.Quiz.Questions)),
	}
	for _, d := range c.Quiz.Questions {
		quiz.Questions = append(quiz.Questions, &domain.QuizQuestion{
			ID:            uuid.New(),
			Question:      d.Question,
			Kind:          d.Kind,
			Options:       slices.Clone(d.Options),
			CorrectAnswer: d.CorrectAnswer,
		})
	}

	mindMap := &domain.MindMap{
		MaterialID: materialID,
		Nodes:      slices.Clone(c.MindMap.Nodes),
		Edges:      slices.Clone(c.MindMap.Edges),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.materialIndex[materialID]
	m.Status = domain.MaterialStatusCompleted
	s.flashcards = append(s.flashcards, cards...)
	s.quizzes = append(s.quizzes, quiz)
	s.mindMaps[materialID] = mindMap
	s.latestMindMap = materialID

	result := &GenerationResult{
		Material:   ptr(*m),
		Flashcards: make([]*domain.Flashcard, len(cards)),
		Quiz:       quiz.Clone(),
		MindMap:    mindMap.Clone(),
	}
	for i, card := range cards {
		result.Flashcards[i] = ptr(*card)
	}
	return result
}

func ptr[T any](v T) *T { return &v }
