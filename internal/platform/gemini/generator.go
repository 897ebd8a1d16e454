package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	"google.golang.org/genai"
)

const defaultPrompt = `You are a study assistant. A student uploaded a {{.Kind}} learning material titled "{{.Title}}".
Write {{.FlashcardCount}} flashcards and a multiple-choice quiz of {{.QuizQuestionCount}} questions about it.
Each question has exactly four options and its correct_answer must repeat one option verbatim.
Grade each flashcard as easy, medium or hard.`

// Config holds the settings for the Gemini generator.
type Config struct {
	APIKey            string
	ModelName         string
	FlashcardCount    int
	QuizQuestionCount int
	MaxRetries        int
	RetryDelay        time.Duration
}

// modelClient is the subset of *genai.Models used by the generator.
type modelClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger         *slog.Logger
	config         Config
	promptTemplate *template.Template
	client         modelClient
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, cfg, client.Models)
}

func newGenerator(logger *slog.Logger, cfg Config, client modelClient) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.FlashcardCount <= 0 || cfg.QuizQuestionCount <= 0 {
		return nil, fmt.Errorf("%w: output counts must be positive", generation.ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	tmpl, err := template.New("study").Parse(defaultPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:         logger.With("component", "gemini_generator", "model", cfg.ModelName),
		config:         cfg,
		promptTemplate: tmpl,
		client:         client,
	}, nil
}

// Generate asks Gemini for flashcards and a quiz about m.
func (g *Generator) Generate(ctx context.Context, m *domain.Material) (*generation.Content, error) {
	prompt, err := g.createPrompt(ctx, m)
	if err != nil {
		return nil, err
	}

	response, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, response)
}

func (g *Generator) createPrompt(ctx context.Context, m *domain.Material) (string, error) {
	if strings.TrimSpace(m.Title) == "" {
		return "", ErrEmptyTitle
	}

	var buf bytes.Buffer
	err := g.promptTemplate.Execute(&buf, promptData{
		Title:             m.Title,
		Kind:              string(m.Kind),
		FlashcardCount:    g.config.FlashcardCount,
		QuizQuestionCount: g.config.QuizQuestionCount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	g.logger.DebugContext(ctx, "prompt generated", "material_id", m.ID, "prompt_length", buf.Len())
	return buf.String(), nil
}

// callWithRetry calls the API, retrying transient failures with exponential
// backoff and jitter. Blocked or malformed responses are returned immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (*ResponseSchema, error) {
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		g.logger.InfoContext(ctx, "making Gemini API call",
			"attempt", attempt+1,
			"max_attempts", g.config.MaxRetries+1)

		result, err := g.client.GenerateContent(ctx, g.config.ModelName, contents, config)
		if err == nil {
			return decodeResponse(result)
		}

		err = mapError(err)
		g.logger.ErrorContext(ctx, "Gemini API call failed", "attempt", attempt+1, "error", err)

		if !errors.Is(err, generation.ErrTransientFailure) {
			return nil, err
		}
		if attempt >= g.config.MaxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, g.config.MaxRetries)
		}

		backoff := float64(g.config.RetryDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		g.logger.InfoContext(ctx, "retrying after delay", "attempt", attempt+1, "delay", delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// decodeResponse validates the candidate and unmarshals its JSON text.
func decodeResponse(result *genai.GenerateContentResponse) (*ResponseSchema, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if result.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var parsed ResponseSchema
	if err := json.Unmarshal([]byte(result.Text()), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	return &parsed, nil
}

// mapError classifies API errors. Rate limits and server errors are transient.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}

// parseResponse converts the API document into generation content.
func (g *Generator) parseResponse(ctx context.Context, response *ResponseSchema) (*generation.Content, error) {
	if len(response.Flashcards) == 0 {
		return nil, fmt.Errorf("%w: no flashcards in response", generation.ErrInvalidResponse)
	}

	content := &generation.Content{
		Quiz:    generation.QuizDraft{Title: response.QuizTitle},
		MindMap: generation.TemplateMindMap(),
	}
	if content.Quiz.Title == "" {
		content.Quiz.Title = "Comprehension Quiz"
	}

	for i, fc := range response.Flashcards {
		if fc.Front == "" || fc.Back == "" {
			return nil, fmt.Errorf("%w: flashcard %d is missing a side", generation.ErrInvalidResponse, i)
		}
		difficulty := domain.Difficulty(strings.ToLower(fc.Difficulty))
		if !difficulty.Valid() {
			difficulty = domain.DifficultyMedium
		}
		content.Flashcards = append(content.Flashcards, generation.FlashcardDraft{
			Front:      fc.Front,
			Back:       fc.Back,
			Difficulty: difficulty,
			Topic:      fc.Topic,
		})
	}

	for i, q := range response.Questions {
		if q.Question == "" || !slices.Contains(q.Options, q.CorrectAnswer) {
			g.logger.WarnContext(ctx, "dropping malformed question", "index", i)
			continue
		}
		content.Quiz.Questions = append(content.Quiz.Questions, generation.QuestionDraft{
			Question:      q.Question,
			Kind:          domain.QuestionKindMultipleChoice,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	if len(content.Quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: no usable quiz questions in response", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "parsed Gemini response",
		"flashcards", len(content.Flashcards),
		"questions", len(content.Quiz.Questions))
	return content, nil
}
