package domain

import (
	"errors"
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user := NewUser("", "ada@example.com")

	if user.Name != "" {
		t.Errorf("Expected name to be kept as given, got %q", user.Name)
	}
	if user.AvatarURL != "https://api.dicebear.com/7.x/avataaars/svg?seed=ada%40example.com" {
		t.Errorf("Unexpected avatar URL %q", user.AvatarURL)
	}
	if user.LearningStyle != LearningStyleVisual {
		t.Errorf("Expected default learning style Visual, got %q", user.LearningStyle)
	}

	again := NewUser("Ada Lovelace", "ada@example.com")
	if again.ID != user.ID {
		t.Error("Expected the same email to yield the same ID")
	}
	if again.Name != "Ada Lovelace" {
		t.Errorf("Expected explicit name to win, got %q", again.Name)
	}

	if NewUser("", "grace@example.com").ID == user.ID {
		t.Error("Expected different emails to yield different IDs")
	}
}

func TestLocalPart(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ada@example.com": "ada",
		"no-at-sign":      "no-at-sign",
		"@example.com":    "",
	}
	for in, want := range tests {
		if got := LocalPart(in); got != want {
			t.Errorf("LocalPart(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProfileUpdateApply(t *testing.T) {
	t.Parallel()

	user := *NewUser("Ada", "ada@example.com")
	name := "Countess"
	style := LearningStyleAuditory

	updated := ProfileUpdate{Name: &name, LearningStyle: &style}.Apply(user)

	if updated.Name != name || updated.LearningStyle != style {
		t.Errorf("Expected supplied fields to change, got %+v", updated)
	}
	if updated.Email != user.Email || updated.AvatarURL != user.AvatarURL || updated.ID != user.ID {
		t.Errorf("Expected other fields to be untouched, got %+v", updated)
	}
	if user.Name != "Ada" {
		t.Error("Apply must not modify its argument")
	}
}

func TestProfileUpdateValidate(t *testing.T) {
	t.Parallel()

	bad := LearningStyle("Telepathic")
	err := ProfileUpdate{LearningStyle: &bad}.Validate()
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrInvalidLearningStyle) {
		t.Errorf("Expected validation error, got %v", err)
	}

	good := LearningStyleReadingWriting
	if err := (ProfileUpdate{LearningStyle: &good}).Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
