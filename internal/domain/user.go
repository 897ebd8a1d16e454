package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// LearningStyle is the user's preferred way of studying.
type LearningStyle string

// Supported learning styles.
const (
	LearningStyleVisual         LearningStyle = "Visual"
	LearningStyleAuditory       LearningStyle = "Auditory"
	LearningStyleKinesthetic    LearningStyle = "Kinesthetic"
	LearningStyleReadingWriting LearningStyle = "Reading/Writing"
)

// Valid reports whether s is one of the supported learning styles.
func (s LearningStyle) Valid() bool {
	switch s {
	case LearningStyleVisual, LearningStyleAuditory, LearningStyleKinesthetic, LearningStyleReadingWriting:
		return true
	default:
		return false
	}
}

// avatarBaseURL renders a generated avatar seeded by the email address.
const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg"

// userNamespace scopes the name-based UUIDs derived from email addresses.
var userNamespace = uuid.MustParse("6f1c5b7e-3c1a-4b8e-9a53-2f2d0c7e4a11")

// User is the profile of the person signed in to the study workspace.
type User struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	AvatarURL     string        `json:"avatar,omitempty"`
	LearningStyle LearningStyle `json:"learning_style,omitempty"`
}

// NewUser derives a user profile from an email address. The same email always
// yields the same ID and avatar. The name is stored as given.
func NewUser(name, email string) *User {
	email = strings.TrimSpace(email)
	return &User{
		ID:            UserIDForEmail(email),
		Name:          name,
		Email:         email,
		AvatarURL:     AvatarURL(email),
		LearningStyle: LearningStyleVisual,
	}
}

// UserIDForEmail returns the deterministic user ID for an email address.
func UserIDForEmail(email string) uuid.UUID {
	return uuid.NewSHA1(userNamespace, []byte(strings.ToLower(email)))
}

// LocalPart returns the part of an email address before the '@'.
func LocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// AvatarURL returns the generated avatar address for an email.
func AvatarURL(email string) string {
	return avatarBaseURL + "?seed=" + url.QueryEscape(email)
}

// ProfileUpdate lists the profile fields to change. Nil fields are left untouched.
type ProfileUpdate struct {
	Name          *string        `json:"name,omitempty"`
	Email         *string        `json:"email,omitempty"`
	AvatarURL     *string        `json:"avatar,omitempty"`
	LearningStyle *LearningStyle `json:"learning_style,omitempty"`
}

// Validate checks the supplied fields.
func (p ProfileUpdate) Validate() error {
	if p.LearningStyle != nil && !p.LearningStyle.Valid() {
		return fmt.Errorf("%w: %w %q", ErrValidation, ErrInvalidLearningStyle, *p.LearningStyle)
	}
	return nil
}

// Apply returns a copy of u with the supplied fields merged in.
func (p ProfileUpdate) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.LearningStyle != nil {
		u.LearningStyle = *p.LearningStyle
	}
	return u
}
