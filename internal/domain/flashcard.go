package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Difficulty grades how hard a flashcard is.
type Difficulty string

// Flashcard difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Flashcard is a question/answer pair generated from a material.
type Flashcard struct {
	ID         uuid.UUID  `json:"id"`
	MaterialID string     `json:"material_id"`
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	Difficulty Difficulty `json:"difficulty"`
	Topic      string     `json:"topic"`
}

// FlashcardFilter narrows a flashcard listing. Zero values match everything.
type FlashcardFilter struct {
	MaterialID string
	Difficulty Difficulty
	// Search is matched case-insensitively against the front and back text.
	Search string
}

// Matches reports whether the card passes every set criterion.
func (f FlashcardFilter) Matches(c *Flashcard) bool {
	if f.MaterialID != "" && c.MaterialID != f.MaterialID {
		return false
	}
	if f.Difficulty != "" && c.Difficulty != f.Difficulty {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Front), term) &&
			!strings.Contains(strings.ToLower(c.Back), term) {
			return false
		}
	}
	return true
}
