package generation

import (
	"context"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
)

// Generator defines the interface for generating study content from a material.
// Implementations must honor ctx cancellation and must not mutate m.
type Generator interface {
	// Generate returns the flashcards, quiz and mind map for m. IDs and
	// material references in the result are filled in by the caller.
	Generate(ctx context.Context, m *domain.Material) (*Content, error)
}

// Content is one batch of generated study material.
type Content struct {
	Flashcards []FlashcardDraft
	Quiz       QuizDraft
	MindMap    MindMapDraft
}

// FlashcardDraft is a flashcard before it is attached to a material.
type FlashcardDraft struct {
	Front      string
	Back       string
	Difficulty domain.Difficulty
	Topic      string
}

// QuizDraft is a quiz before it is attached to a material.
type QuizDraft struct {
	Title     string
	Questions []QuestionDraft
}

// QuestionDraft is a quiz question without identity.
type QuestionDraft struct {
	Question      string
	Kind          domain.QuestionKind
	Options       []string
	CorrectAnswer string
}

// MindMapDraft holds the nodes and edges of a generated mind map.
type MindMapDraft struct {
	Nodes []domain.MindMapNode
	Edges []domain.MindMapEdge
}

// TemplateMindMap returns the fixed five-node concept map used for every material.
func TemplateMindMap() MindMapDraft {
	return MindMapDraft{
		Nodes: []domain.MindMapNode{
			{ID: "1", Label: "Main Topic", X: 250, Y: 150},
			{ID: "2", Label: "Subtopic 1", X: 100, Y: 50},
			{ID: "3", Label: "Subtopic 2", X: 400, Y: 50},
			{ID: "4", Label: "Detail A", X: 50, Y: 250},
			{ID: "5", Label: "Detail B", X: 450, Y: 250},
		},
		Edges: []domain.MindMapEdge{
			{ID: "e1", Source: "1", Target: "2"},
			{ID: "e2", Source: "1", Target: "3"},
			{ID: "e3", Source: "2", Target: "4"},
			{ID: "e4", Source: "3", Target: "5"},
		},
	}
}
