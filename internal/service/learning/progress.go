package learning

import (
	"context"
	"math"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/google/uuid"
)

// Progress derives the study metrics from the current state.
//
// FlashcardsReviewed counts every recorded review and TimeSpent sums their
// durations. QuizAccuracy is the share of correctly answered questions across
// completed quizzes. RetentionScore is the share of flashcards reviewed at least once.
func (s *Service) Progress(ctx context.Context) domain.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var spent time.Duration
	seen := make(map[uuid.UUID]struct{}, len(s.reviews))
	for _, r := range s.reviews {
		spent += r.Duration
		seen[r.FlashcardID] = struct{}{}
	}

	var correct, answered int
	for _, q := range s.quizzes {
		if !q.Completed {
			continue
		}
		for _, question := range q.Questions {
			answered++
			if question.UserAnswer != "" && question.UserAnswer == question.CorrectAnswer {
				correct++
			}
		}
	}

	return domain.Progress{
		TimeSpent:          spent,
		TimeSpentMinutes:   int(math.Round(spent.Minutes())),
		QuizAccuracy:       domain.ScorePercent(correct, answered),
		RetentionScore:     domain.ScorePercent(len(seen), len(s.flashcards)),
		FlashcardsReviewed: len(s.reviews),
	}
}

// Overview returns the dashboard counters.
func (s *Service) Overview(ctx context.Context) domain.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	completed := 0
	for _, q := range s.quizzes {
		if q.Completed {
			completed++
		}
	}
	return domain.Overview{
		MaterialsUploaded: len(s.materials),
		FlashcardsCreated: len(s.flashcards),
		QuizzesCompleted:  completed,
	}
}
