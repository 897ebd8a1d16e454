package learning

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/Sanjeev-Guntha/synapse/internal/events"
)

// maxIDAttempts bounds retries when a freshly minted ID collides.
const maxIDAttempts = 5

// NewMaterial describes a material to add. Status defaults to processing.
type NewMaterial struct {
	Title  string                `json:"title" validate:"required,max=500"`
	Kind   domain.MaterialKind   `json:"kind" validate:"required,oneof=pdf docx youtube"`
	Status domain.MaterialStatus `json:"status,omitempty" validate:"omitempty,oneof=processing completed failed"`
}

// AddMaterial appends a new material with a fresh ID and the current time.
func (s *Service) AddMaterial(ctx context.Context, in NewMaterial) (*domain.Material, error) {
	if in.Status == "" {
		in.Status = domain.MaterialStatusProcessing
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueMaterialID()
	if err != nil {
		return nil, NewServiceError("add_material", "failed to generate material ID", err)
	}

	uploadedAt := s.now()
	if n := len(s.materials); n > 0 && uploadedAt.Before(s.materials[n-1].UploadedAt) {
		uploadedAt = s.materials[n-1].UploadedAt
	}

	m := &domain.Material{
		ID:         id,
		Title:      strings.TrimSpace(in.Title),
		Kind:       in.Kind,
		UploadedAt: uploadedAt,
		Status:     in.Status,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	s.materials = append(s.materials, m)
	s.materialIndex[m.ID] = m

	s.logger.InfoContext(ctx, "material added",
		"material_id", m.ID,
		"kind", m.Kind,
		"status", m.Status)

	out := *m
	return &out, nil
}

// AddUpload adds a document material named after the uploaded file.
func (s *Service) AddUpload(ctx context.Context, filename string) (*domain.Material, error) {
	return s.AddMaterial(ctx, NewMaterial{
		Title: filename,
		Kind:  domain.KindFromFilename(filename),
	})
}

// AddYouTube adds a material for a video link.
func (s *Service) AddYouTube(ctx context.Context, link string) (*domain.Material, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, fmt.Errorf("%w: video URL cannot be empty", domain.ErrValidation)
	}
	return s.AddMaterial(ctx, NewMaterial{
		Title: domain.YouTubeTitle(link),
		Kind:  domain.MaterialKindYouTube,
	})
}

// RequestGeneration asks for the material's content to be generated in the
// background. It returns once the request has been handed off.
func (s *Service) RequestGeneration(ctx context.Context, materialID string) error {
	if _, err := s.Material(ctx, materialID); err != nil {
		return err
	}

	event, err := events.NewContentGenerationEvent(materialID)
	if err != nil {
		return NewServiceError("request_generation", "failed to create event", err)
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit content generation event",
			"error", err,
			"material_id", materialID,
			"event_id", event.ID)
		return NewServiceError("request_generation", "failed to emit event", err)
	}

	s.logger.InfoContext(ctx, "content generation requested",
		"material_id", materialID,
		"event_id", event.ID)
	return nil
}

// Materials returns every material in insertion order.
func (s *Service) Materials(ctx context.Context) []*domain.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Material, len(s.materials))
	for i, m := range s.materials {
		c := *m
		out[i] = &c
	}
	return out
}

// Material returns the material with the given ID.
func (s *Service) Material(ctx context.Context, id string) (*domain.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.materialIndex[id]
	if !ok {
		return nil, ErrMaterialNotFound
	}
	out := *m
	return &out, nil
}

// uniqueMaterialID must be called with s.mu held.
func (s *Service) uniqueMaterialID() (string, error) {
	for range maxIDAttempts {
		id, err := s.newID()
		if err != nil {
			return "", err
		}
		if _, taken := s.materialIndex[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("no unique ID after %d attempts", maxIDAttempts)
}
