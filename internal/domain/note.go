package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/thechaoticengineer/CloudScribe/internal/result"
)

const (
	MaxTitleLength   = 200
	MaxContentLength = 5000
)

// Note is the persisted domain entity. Field rules live here and nowhere
// else: the transport layer binds raw input and the entity decides.
type Note struct {
	ID          uuid.UUID
	Title       string
	Content     string
	OwnerID     uuid.UUID
	CreatedUtc  time.Time
	ModifiedUtc time.Time
}

// NewNote validates title/content and builds a note owned by owner.
// IDs are UUIDv7 so creation order is sortable by id as well as timestamp.
func NewNote(title, content string, owner uuid.UUID) (Note, *result.Error) {
	if err := validateFields(title, content); err != nil {
		return Note{}, err
	}
	id, idErr := uuid.NewV7()
	if idErr != nil {
		return Note{}, result.Failure("Notes.IDGeneration", "could not generate note id")
	}
	now := time.Now().UTC()
	return Note{
		ID:          id,
		Title:       title,
		Content:     content,
		OwnerID:     owner,
		CreatedUtc:  now,
		ModifiedUtc: now,
	}, nil
}

// Update re-validates both fields and bumps ModifiedUtc. ID, OwnerID and
// CreatedUtc are never touched.
func (n *Note) Update(title, content string) *result.Error {
	if err := validateFields(title, content); err != nil {
		return err
	}
	n.Title = title
	n.Content = content
	n.ModifiedUtc = time.Now().UTC()
	return nil
}

// validateFields rejects blank-after-trim values and values past the rune
// limits. Exactly the limit is fine.
func validateFields(title, content string) *result.Error {
	if strings.TrimSpace(title) == "" {
		return result.Validation("Notes.TitleRequired", "title must not be blank")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return result.Validation("Notes.TitleTooLong", "title must be at most 200 characters")
	}
	if strings.TrimSpace(content) == "" {
		return result.Validation("Notes.ContentRequired", "content must not be blank")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return result.Validation("Notes.ContentTooLong", "content must be at most 5000 characters")
	}
	return nil
}
