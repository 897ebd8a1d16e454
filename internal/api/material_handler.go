package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Sanjeev-Guntha/synapse/internal/api/shared"
	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/service/learning"
	"github.com/google/uuid"
)

// maxUploadBytes caps multipart uploads. Only the filename is used.
const maxUploadBytes = 32 << 20

// LearningService is the workspace behaviour the learning endpoints need.
type LearningService interface {
	AddMaterial(ctx context.Context, in learning.NewMaterial) (*domain.Material, error)
	AddUpload(ctx context.Context, filename string) (*domain.Material, error)
	AddYouTube(ctx context.Context, link string) (*domain.Material, error)
	Materials(ctx context.Context) []*domain.Material
	Material(ctx context.Context, id string) (*domain.Material, error)
	RequestGeneration(ctx context.Context, materialID string) error
	GenerateContent(ctx context.Context, materialID string) (*learning.GenerationResult, error)

	Flashcards(ctx context.Context, filter domain.FlashcardFilter) []*domain.Flashcard
	ReviewFlashcard(ctx context.Context, flashcardID uuid.UUID, duration time.Duration) error
	Quizzes(ctx context.Context) []*domain.Quiz
	Quiz(ctx context.Context, id uuid.UUID) (*domain.Quiz, error)
	SubmitQuiz(ctx context.Context, quizID uuid.UUID, answers map[uuid.UUID]string) (*domain.QuizResult, error)
	MindMap(ctx context.Context, materialID string) (*domain.MindMap, error)
	LatestMindMap(ctx context.Context) (*domain.MindMap, error)
	ConnectNodes(ctx context.Context, materialID, source, target string) (*domain.MindMapEdge, error)
	Progress(ctx context.Context) domain.Progress
	Overview(ctx context.Context) domain.Overview
}

// MaterialHandler handles study material requests.
type MaterialHandler struct {
	learning LearningService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(svc LearningService) *MaterialHandler {
	return &MaterialHandler{learning: svc}
}

// List handles GET /api/materials.
func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.learning.Materials(r.Context()))
}

// Create handles POST /api/materials.
func (h *MaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMaterialRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	m, err := h.learning.AddMaterial(r.Context(), learning.NewMaterial{
		Title:  req.Title,
		Kind:   req.Kind,
		Status: req.Status,
	})
	h.respondCreated(w, r, m, err, req.Generate)
}

// Upload handles POST /api/materials/upload with a multipart "file" field.
func (h *MaterialHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, "File too large", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "A file is required", err)
		return
	}
	_ = file.Close()

	m, err := h.learning.AddUpload(r.Context(), header.Filename)
	h.respondCreated(w, r, m, err, formBool(r, "generate"))
}

// YouTube handles POST /api/materials/youtube.
func (h *MaterialHandler) YouTube(w http.ResponseWriter, r *http.Request) {
	var req YouTubeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	m, err := h.learning.AddYouTube(r.Context(), req.URL)
	h.respondCreated(w, r, m, err, req.Generate)
}

// respondCreated answers 201 for a new material, or 202 once background
// generation has been requested for it.
func (h *MaterialHandler) respondCreated(
	w http.ResponseWriter,
	r *http.Request,
	m *domain.Material,
	err error,
	generate bool,
) {
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add material")
		return
	}
	if !generate {
		shared.RespondWithJSON(w, r, http.StatusCreated, m)
		return
	}

	if err := h.learning.RequestGeneration(r.Context(), m.ID); err != nil {
		HandleAPIError(w, r, err, "Failed to start content generation")
		return
	}
	w.Header().Set("Location", "/api/materials/"+m.ID)
	shared.RespondWithJSON(w, r, http.StatusAccepted, m)
}

// Get handles GET /api/materials/{id}.
func (h *MaterialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	m, err := h.learning.Material(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get material")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, m)
}

// Generate handles POST /api/materials/{id}/generate and waits for the result.
func (h *MaterialHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.learning.GenerateContent(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate content")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// MindMap handles GET /api/materials/{id}/mindmap.
func (h *MaterialHandler) MindMap(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	mm, err := h.learning.MindMap(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get mind map")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, mm)
}

// ConnectNodes handles POST /api/materials/{id}/mindmap/edges.
func (h *MaterialHandler) ConnectNodes(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var req ConnectNodesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	edge, err := h.learning.ConnectNodes(r.Context(), id, req.Source, req.Target)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to connect nodes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, edge)
}
