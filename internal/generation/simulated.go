package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
)

// SimulatedTopics are assigned to generated flashcards in rotation.
var SimulatedTopics = []string{"Biology", "Physics", "Chemistry", "Math"}

// simulatedOptions are the answer choices of every simulated question.
var simulatedOptions = []string{"Option A", "Option B", "Option C", "Option D"}

// SimulatedConfig controls the simulated generator.
type SimulatedConfig struct {
	// Delay is how long a generation pretends to take.
	Delay time.Duration

	FlashcardCount    int
	QuizQuestionCount int
}

// DefaultSimulatedConfig returns the stock delay and output sizes.
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		Delay:             3 * time.Second,
		FlashcardCount:    10,
		QuizQuestionCount: 5,
	}
}

// SimulatedGenerator produces placeholder content after a fixed delay.
type SimulatedGenerator struct {
	config SimulatedConfig
	logger *slog.Logger
}

var _ Generator = (*SimulatedGenerator)(nil)

// NewSimulatedGenerator creates a SimulatedGenerator.
func NewSimulatedGenerator(config SimulatedConfig, logger *slog.Logger) (*SimulatedGenerator, error) {
	if config.FlashcardCount <= 0 || config.QuizQuestionCount <= 0 {
		return nil, fmt.Errorf("%w: output counts must be positive", ErrInvalidConfig)
	}
	if config.Delay < 0 {
		return nil, fmt.Errorf("%w: delay cannot be negative", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedGenerator{
		config: config,
		logger: logger.With("component", "simulated_generator"),
	}, nil
}

// Generate waits for the configured delay and returns fixed content.
// It returns the context error if ctx ends first.
func (g *SimulatedGenerator) Generate(ctx context.Context, m *domain.Material) (*Content, error) {
	g.logger.DebugContext(ctx, "simulating generation", "material_id", m.ID, "delay", g.config.Delay)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timer := time.NewTimer(g.config.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	content := &Content{
		Flashcards: make([]FlashcardDraft, 0, g.config.FlashcardCount),
		Quiz: QuizDraft{
			Title:     "Comprehension Quiz",
			Questions: make([]QuestionDraft, 0, g.config.QuizQuestionCount),
		},
		MindMap: TemplateMindMap(),
	}

	for i := 0; i < g.config.FlashcardCount; i++ {
		content.Flashcards = append(content.Flashcards, FlashcardDraft{
			Front:      fmt.Sprintf("Question %d: What is the key concept?", i+1),
			Back:       fmt.Sprintf("Answer %d: This is the detailed explanation of the concept.", i+1),
			Difficulty: domain.Difficulties[i%len(domain.Difficulties)],
			Topic:      SimulatedTopics[i%len(SimulatedTopics)],
		})
	}

	for i := 0; i < g.config.QuizQuestionCount; i++ {
		options := make([]string, len(simulatedOptions))
		copy(options, simulatedOptions)
		content.Quiz.Questions = append(content.Quiz.Questions, QuestionDraft{
			Question:      fmt.Sprintf("Question %d: Which of the following is correct?", i+1),
			Kind:          domain.QuestionKindMultipleChoice,
			Options:       options,
			CorrectAnswer: simulatedOptions[0],
		})
	}

	return content, nil
}
