package domain

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// QuestionKind is the answer format of a quiz question.
type QuestionKind string

// Question kinds.
const (
	QuestionKindMultipleChoice QuestionKind = "mcq"
	QuestionKindTrueFalse      QuestionKind = "true-false"
	QuestionKindFillBlank      QuestionKind = "fill-blank"
)

// QuizQuestion is one question of a quiz.
type QuizQuestion struct {
	ID            uuid.UUID    `json:"id"`
	Question      string       `json:"question"`
	Kind          QuestionKind `json:"kind"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	UserAnswer    string       `json:"user_answer,omitempty"`
}

// HasValidAnswer reports whether the correct answer is selectable. Fill-in
// questions carry no options and always pass.
func (q *QuizQuestion) HasValidAnswer() bool {
	if len(q.Options) == 0 {
		return q.Kind == QuestionKindFillBlank && q.CorrectAnswer != ""
	}
	return slices.Contains(q.Options, q.CorrectAnswer)
}

// Quiz is an ordered set of questions generated from a material.
type Quiz struct {
	ID          uuid.UUID       `json:"id"`
	MaterialID  string          `json:"material_id"`
	Title       string          `json:"title"`
	Questions   []*QuizQuestion `json:"questions"`
	Score       *int            `json:"score,omitempty"`
	Completed   bool            `json:"completed"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// QuizResult summarizes a graded attempt.
type QuizResult struct {
	QuizID  uuid.UUID `json:"quiz_id"`
	Score   int       `json:"score"`
	Correct int       `json:"correct"`
	Total   int       `json:"total"`
}

// Grade records answers keyed by question ID, marks the quiz completed and
// returns the result. The score is the rounded percentage of correct answers.
// Questions without an answer count as wrong.
func (q *Quiz) Grade(answers map[uuid.UUID]string, now time.Time) QuizResult {
	correct := 0
	for _, question := range q.Questions {
		question.UserAnswer = answers[question.ID]
		if question.UserAnswer != "" && question.UserAnswer == question.CorrectAnswer {
			correct++
		}
	}

	score := ScorePercent(correct, len(q.Questions))
	q.Score = &score
	q.Completed = true
	completedAt := now
	q.CompletedAt = &completedAt

	return QuizResult{
		QuizID:  q.ID,
		Score:   score,
		Correct: correct,
		Total:   len(q.Questions),
	}
}

// ScorePercent returns round(correct/total*100), or 0 for an empty quiz.
func ScorePercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Clone returns a deep copy so callers can't mutate stored state.
func (q *Quiz) Clone() *Quiz {
	c := *q
	c.Questions = make([]*QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		qc := *question
		qc.Options = slices.Clone(question.Options)
		c.Questions[i] = &qc
	}
	if q.Score != nil {
		s := *q.Score
		c.Score = &s
	}
	if q.CompletedAt != nil {
		t := *q.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
