package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFlashcardFilterMatches(t *testing.T) {
	t.Parallel()

	card := &Flashcard{
		ID:         uuid.New(),
		MaterialID: "m1",
		Front:      "What is Mitosis?",
		Back:       "Cell division",
		Difficulty: DifficultyMedium,
		Topic:      "Biology",
	}

	tests := []struct {
		name   string
		filter FlashcardFilter
		want   bool
	}{
		{"empty filter", FlashcardFilter{}, true},
		{"material match", FlashcardFilter{MaterialID: "m1"}, true},
		{"material mismatch", FlashcardFilter{MaterialID: "m2"}, false},
		{"difficulty match", FlashcardFilter{Difficulty: DifficultyMedium}, true},
		{"difficulty mismatch", FlashcardFilter{Difficulty: DifficultyHard}, false},
		{"search front case-insensitive", FlashcardFilter{Search: "MITOSIS"}, true},
		{"search back", FlashcardFilter{Search: "division"}, true},
		{"search miss", FlashcardFilter{Search: "photosynthesis"}, false},
		{"all criteria", FlashcardFilter{MaterialID: "m1", Difficulty: DifficultyMedium, Search: "cell"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(card))
		})
	}
}
