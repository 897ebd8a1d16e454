package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeClient returns queued responses in order.
type fakeClient struct {
	calls     int
	responses []*genai.GenerateContentResponse
	errs      []error
	prompts   []string
}

func (f *fakeClient) GenerateContent(
	_ context.Context,
	_ string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	if config.ResponseMIMEType != "application/json" {
		return nil, errors.New("expected JSON output")
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp *genai.GenerateContentResponse
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func textResponse(t *testing.T, v any) *genai.GenerateContentResponse {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: string(data)}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func validDocument() ResponseSchema {
	return ResponseSchema{
		Flashcards: []FlashcardSchema{
			{Front: "What is ATP?", Back: "Energy currency", Difficulty: "Easy", Topic: "Biology"},
			{Front: "What is F=ma?", Back: "Newton's second law", Difficulty: "unknown", Topic: "Physics"},
		},
		QuizTitle: "Cells",
		Questions: []QuestionSchema{
			{Question: "Powerhouse?", Options: []string{"Mitochondria", "Nucleus"}, CorrectAnswer: "Mitochondria"},
			{Question: "Broken", Options: []string{"A", "B"}, CorrectAnswer: "C"},
		},
	}
}

func testGenerator(t *testing.T, client modelClient) *Generator {
	t.Helper()
	g, err := newGenerator(slog.New(slog.NewTextHandler(io.Discard, nil)), Config{
		ModelName:         "gemini-2.0-flash",
		FlashcardCount:    2,
		QuizQuestionCount: 2,
		MaxRetries:        2,
		RetryDelay:        time.Millisecond,
	}, client)
	require.NoError(t, err)
	return g
}

var material = &domain.Material{ID: "abc123xyz", Title: "Cell biology.pdf", Kind: domain.MaterialKindPDF}

func TestGenerate_Success(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []*genai.GenerateContentResponse{textResponse(t, validDocument())}}
	content, err := testGenerator(t, client).Generate(context.Background(), material)
	require.NoError(t, err)

	assert.True(t, strings.Contains(client.prompts[0], "Cell biology.pdf"))
	require.Len(t, content.Flashcards, 2)
	assert.Equal(t, domain.DifficultyEasy, content.Flashcards[0].Difficulty)
	assert.Equal(t, domain.DifficultyMedium, content.Flashcards[1].Difficulty)
	assert.Equal(t, "Cells", content.Quiz.Title)
	require.Len(t, content.Quiz.Questions, 1, "question with invalid answer is dropped")
	assert.Len(t, content.MindMap.Nodes, 5)
}

func TestGenerate_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	client := &fakeClient{
		errs:      []error{&genai.APIError{Code: 503}, nil},
		responses: []*genai.GenerateContentResponse{nil, textResponse(t, validDocument())},
	}
	_, err := testGenerator(t, client).Generate(context.Background(), material)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestGenerate_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	rateLimited := &genai.APIError{Code: 429}
	client := &fakeClient{errs: []error{rateLimited, rateLimited, rateLimited}}
	_, err := testGenerator(t, client).Generate(context.Background(), material)
	assert.True(t, errors.Is(err, generation.ErrTransientFailure))
	assert.Equal(t, 3, client.calls)
}

func TestGenerate_PermanentErrors(t *testing.T) {
	t.Parallel()

	blocked := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content:      &genai.Content{},
		FinishReason: genai.FinishReasonSafety,
	}}}
	garbage := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: "not json"}}},
	}}}

	tests := []struct {
		name    string
		client  *fakeClient
		wantErr error
	}{
		{"bad request", &fakeClient{errs: []error{&genai.APIError{Code: 400}}}, generation.ErrGenerationFailed},
		{"safety block", &fakeClient{responses: []*genai.GenerateContentResponse{blocked}}, generation.ErrContentBlocked},
		{"malformed json", &fakeClient{responses: []*genai.GenerateContentResponse{garbage}}, generation.ErrInvalidResponse},
		{"no candidates", &fakeClient{responses: []*genai.GenerateContentResponse{{}}}, generation.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testGenerator(t, tt.client).Generate(context.Background(), material)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, 1, tt.client.calls)
		})
	}
}

func TestGenerate_EmptyTitle(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	_, err := testGenerator(t, client).Generate(context.Background(), &domain.Material{ID: "x"})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Zero(t, client.calls)
}

func TestNewGenerator_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(context.Background(), slog.Default(), Config{ModelName: "m"})
	assert.True(t, errors.Is(err, generation.ErrInvalidConfig))
}
