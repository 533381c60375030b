package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thechaoticengineer/CloudScribe/internal/result"
)

func TestNewNote_Valid(t *testing.T) {
	owner := uuid.New()

	n, err := NewNote("Groceries", "milk, eggs", owner)
	require.Nil(t, err)

	assert.Equal(t, "Groceries", n.Title)
	assert.Equal(t, "milk, eggs", n.Content)
	assert.Equal(t, owner, n.OwnerID)
	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.False(t, n.CreatedUtc.IsZero())
	assert.Equal(t, n.CreatedUtc, n.ModifiedUtc)
	assert.Equal(t, time.UTC, n.CreatedUtc.Location())
}

func TestNewNote_ExactLimitsAccepted(t *testing.T) {
	n, err := NewNote(strings.Repeat("a", MaxTitleLength), strings.Repeat("b", MaxContentLength), uuid.New())
	require.Nil(t, err)
	assert.Len(t, n.Title, MaxTitleLength)
	assert.Len(t, n.Content, MaxContentLength)
}

func TestNewNote_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		content string
		code    string
	}{
		{"empty title", "", "content", "Notes.TitleRequired"},
		{"whitespace title", "   \t\n", "content", "Notes.TitleRequired"},
		{"title over limit", strings.Repeat("a", MaxTitleLength+1), "content", "Notes.TitleTooLong"},
		{"empty content", "title", "", "Notes.ContentRequired"},
		{"whitespace content", "title", "  ", "Notes.ContentRequired"},
		{"content over limit", "title", strings.Repeat("b", MaxContentLength+1), "Notes.ContentTooLong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNote(tc.title, tc.content, uuid.New())
			require.NotNil(t, err)
			assert.Equal(t, result.KindValidation, err.Kind)
			assert.Equal(t, tc.code, err.Code)
		})
	}
}

func TestNewNote_RuneLimitsNotByteLimits(t *testing.T) {
	// 200 multi-byte runes are within the limit even though the byte count
	// is far past 200.
	_, err := NewNote(strings.Repeat("é", MaxTitleLength), "content", uuid.New())
	require.Nil(t, err)

	_, err = NewNote(strings.Repeat("é", MaxTitleLength+1), "content", uuid.New())
	require.NotNil(t, err)
}

func TestUpdate_BumpsModifiedOnly(t *testing.T) {
	n, err := NewNote("before", "old content", uuid.New())
	require.Nil(t, err)

	id, owner, created, modified := n.ID, n.OwnerID, n.CreatedUtc, n.ModifiedUtc
	time.Sleep(time.Millisecond)

	require.Nil(t, n.Update("after", "new content"))

	assert.Equal(t, "after", n.Title)
	assert.Equal(t, "new content", n.Content)
	assert.Equal(t, id, n.ID)
	assert.Equal(t, owner, n.OwnerID)
	assert.Equal(t, created, n.CreatedUtc)
	assert.True(t, n.ModifiedUtc.After(modified))
}

func TestUpdate_InvalidLeavesNoteUnchanged(t *testing.T) {
	n, err := NewNote("title", "content", uuid.New())
	require.Nil(t, err)
	before := n

	uerr := n.Update("", "new content")
	require.NotNil(t, uerr)
	assert.Equal(t, result.KindValidation, uerr.Kind)
	assert.Equal(t, before, n)
}
