package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaterialValidate(t *testing.T) {
	t.Parallel()

	valid := Material{
		ID:         "abc123xyz",
		Title:      "notes.pdf",
		Kind:       MaterialKindPDF,
		UploadedAt: time.Now(),
		Status:     MaterialStatusProcessing,
	}

	tests := []struct {
		name    string
		mutate  func(m *Material)
		wantErr error
	}{
		{name: "valid", mutate: func(*Material) {}},
		{name: "empty id", mutate: func(m *Material) { m.ID = "" }, wantErr: ErrValidation},
		{name: "blank title", mutate: func(m *Material) { m.Title = "  " }, wantErr: ErrValidation},
		{name: "bad kind", mutate: func(m *Material) { m.Kind = "mp3" }, wantErr: ErrInvalidMaterialKind},
		{name: "bad status", mutate: func(m *Material) { m.Status = "queued" }, wantErr: ErrInvalidMaterialStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestKindFromFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MaterialKindPDF, KindFromFilename("notes.pdf"))
	assert.Equal(t, MaterialKindPDF, KindFromFilename("NOTES.PDF"))
	assert.Equal(t, MaterialKindDOCX, KindFromFilename("essay.docx"))
	assert.Equal(t, MaterialKindDOCX, KindFromFilename("README"))
}

func TestYouTubeTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "YouTube: https://youtu.be/x", YouTubeTitle("https://youtu.be/x"))
}
