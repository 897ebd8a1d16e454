package domain

import (
	"time"

	"github.com/google/uuid"
)

// Progress aggregates the user's study activity. It is always derived from
// the current learning state and never stored.
type Progress struct {
	TimeSpent          time.Duration `json:"-"`
	TimeSpentMinutes   int           `json:"time_spent_minutes"`
	QuizAccuracy       int           `json:"quiz_accuracy"`
	RetentionScore     int           `json:"retention_score"`
	FlashcardsReviewed int           `json:"flashcards_reviewed"`
}

// Overview holds the dashboard counters.
type Overview struct {
	MaterialsUploaded int `json:"materials_uploaded"`
	FlashcardsCreated int `json:"flashcards_created"`
	QuizzesCompleted  int `json:"quizzes_completed"`
}

// FlashcardReview is one recorded pass over a flashcard.
type FlashcardReview struct {
	FlashcardID uuid.UUID     `json:"flashcard_id"`
	Duration    time.Duration `json:"duration"`
	ReviewedAt  time.Time     `json:"reviewed_at"`
}
