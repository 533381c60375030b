package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thechaoticengineer/CloudScribe/internal/dto"
)

func TestNotesClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("pageNumber"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(dto.PagedNotesResponse{
			Items:      []dto.NoteResponse{{ID: "n1", Title: "t", Content: "c", CreatedUtc: time.Now().UTC()}},
			PageNumber: 2,
			PageSize:   10,
			TotalCount: 11,
			TotalPages: 2,
		})
	}))
	defer srv.Close()

	page, err := NewNotesClient(srv.URL).List(context.Background(), "tok", 2, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "n1", page.Items[0].ID)
	assert.Equal(t, 11, page.TotalCount)
}

func TestNotesClient_CreateSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.CreateNoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "T1", req.Title)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.NoteResponse{ID: "n1", Title: req.Title, Content: req.Content})
	}))
	defer srv.Close()

	note, err := NewNotesClient(srv.URL).Create(context.Background(), "tok", dto.CreateNoteRequest{Title: "T1", Content: "C1"})
	require.NoError(t, err)
	assert.Equal(t, "n1", note.ID)
}

func TestNotesClient_DeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/notes/n1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewNotesClient(srv.URL).Delete(context.Background(), "tok", "n1"))
}

func TestNotesClient_DecodesProblemBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(dto.Problem{Code: "Notes.Forbidden", Message: "you don't have access to this note"})
	}))
	defer srv.Close()

	_, err := NewNotesClient(srv.URL).Get(context.Background(), "tok", "n1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Notes.Forbidden", apiErr.Problem.Code)
}

func TestNotesClient_NonJSONErrorStillTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewNotesClient(srv.URL).Delete(context.Background(), "tok", "n1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Problem.Code)
}
