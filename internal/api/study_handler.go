package api

import (
	"net/http"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/api/shared"
	"github.com/Sanjeev-Guntha/synapse/internal/domain"
)

// StudyHandler serves flashcards, quizzes, mind maps and progress.
type StudyHandler struct {
	learning LearningService
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(svc LearningService) *StudyHandler {
	return &StudyHandler{learning: svc}
}

// Flashcards handles GET /api/flashcards?material_id=&difficulty=&q=.
func (h *StudyHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.FlashcardFilter{
		MaterialID: q.Get("material_id"),
		Difficulty: domain.Difficulty(q.Get("difficulty")),
		Search:     q.Get("q"),
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		HandleAPIError(w, r, domain.ErrInvalidDifficulty, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.learning.Flashcards(r.Context(), filter))
}

// ReviewFlashcard handles POST /api/flashcards/{id}/review.
func (h *StudyHandler) ReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req ReviewFlashcardRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	d := time.Duration(req.DurationSeconds * float64(time.Second))
	if err := h.learning.ReviewFlashcard(r.Context(), id, d); err != nil {
		HandleAPIError(w, r, err, "Failed to record review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quizzes handles GET /api/quizzes.
func (h *StudyHandler) Quizzes(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.learning.Quizzes(r.Context()))
}

// Quiz handles GET /api/quizzes/{id}.
func (h *StudyHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	quiz, err := h.learning.Quiz(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get quiz")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, quiz)
}

// SubmitQuiz handles POST /api/quizzes/{id}/submit.
func (h *StudyHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req SubmitQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.learning.SubmitQuiz(r.Context(), id, req.Answers)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit quiz")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// LatestMindMap handles GET /api/mindmap.
func (h *StudyHandler) LatestMindMap(w http.ResponseWriter, r *http.Request) {
	mm, err := h.learning.LatestMindMap(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get mind map")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mm)
}

// Progress handles GET /api/progress.
func (h *StudyHandler) Progress(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.learning.Progress(r.Context()))
}

// Overview handles GET /api/overview.
func (h *StudyHandler) Overview(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.learning.Overview(r.Context()))
}
