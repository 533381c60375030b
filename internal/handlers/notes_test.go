package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thechaoticengineer/CloudScribe/internal/auth"
	"github.com/thechaoticengineer/CloudScribe/internal/domain"
	"github.com/thechaoticengineer/CloudScribe/internal/dto"
	"github.com/thechaoticengineer/CloudScribe/internal/repo"
	"github.com/thechaoticengineer/CloudScribe/internal/service"
)

// tokenVerifier resolves tokens from a fixed map, standing in for the OIDC
// provider. The raw token doubles as the key.
type tokenVerifier map[string]uuid.UUID

func (v tokenVerifier) Verify(_ context.Context, raw string) (uuid.UUID, error) {
	id, ok := v[raw]
	if !ok {
		return uuid.Nil, assertionError("unknown token")
	}
	return id, nil
}

type assertionError string

func (e assertionError) Error() string { return string(e) }

type memRepo struct {
	notes map[uuid.UUID]domain.Note
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Note, error) {
	n, ok := m.notes[id]
	if !ok {
		return domain.Note{}, repo.ErrNotFound
	}
	return n, nil
}

func (m *memRepo) ListPage(_ context.Context, owner uuid.UUID, offset, limit int) ([]domain.Note, int, error) {
	var owned []domain.Note
	for _, n := range m.notes {
		if n.OwnerID == owner {
			owned = append(owned, n)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedUtc.After(owned[j].CreatedUtc) })
	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	if offset+limit < total {
		return owned[offset : offset+limit], total, nil
	}
	return owned[offset:], total, nil
}

func (m *memRepo) Insert(_ context.Context, n domain.Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *memRepo) Update(_ context.Context, n domain.Note) error {
	if _, ok := m.notes[n.ID]; !ok {
		return repo.ErrNotFound
	}
	m.notes[n.ID] = n
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.notes[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

type testAPI struct {
	router *gin.Engine
	repo   *memRepo
}

func newTestAPI(tokens tokenVerifier) *testAPI {
	gin.SetMode(gin.TestMode)
	mem := &memRepo{notes: make(map[uuid.UUID]domain.Note)}
	h := NewNoteHandler(service.NewNoteService(mem))

	r := gin.New()
	api := r.Group("/api", auth.RequireUser(tokens))
	api.GET("/notes", h.GetAll)
	api.GET("/notes/:id", h.GetById)
	api.POST("/notes", h.Create)
	api.PUT("/notes/:id", h.Update)
	api.DELETE("/notes/:id", h.Delete)
	return &testAPI{router: r, repo: mem}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeNote(t *testing.T, w *httptest.ResponseRecorder) dto.NoteResponse {
	t.Helper()
	var n dto.NoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	return n
}

func TestNotesAPI_CreateReadUpdateDelete(t *testing.T) {
	alice := uuid.New()
	api := newTestAPI(tokenVerifier{"alice": alice})

	w := api.do(t, http.MethodPost, "/api/notes", "alice", dto.CreateNoteRequest{Title: "T1", Content: "C1"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeNote(t, w)
	assert.Equal(t, "/api/notes/"+created.ID, w.Header().Get("Location"))

	w = api.do(t, http.MethodGet, "/api/notes/"+created.ID, "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decodeNote(t, w))

	w = api.do(t, http.MethodPut, "/api/notes/"+created.ID, "alice", dto.UpdateNoteRequest{Title: "T2", Content: "C2"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeNote(t, w)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, created.CreatedUtc, updated.CreatedUtc)

	w = api.do(t, http.MethodDelete, "/api/notes/"+created.ID, "alice", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/notes/"+created.ID, "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotesAPI_StatusMapping(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	api := newTestAPI(tokenVerifier{"alice": alice, "bob": bob})

	w := api.do(t, http.MethodPost, "/api/notes", "alice", dto.CreateNoteRequest{Title: "mine", Content: "secret"})
	require.Equal(t, http.StatusCreated, w.Code)
	noteID := decodeNote(t, w).ID

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   string
	}{
		{"no token", http.MethodGet, "/api/notes", "", nil, http.StatusUnauthorized, "Notes.Unauthorized"},
		{"bad token", http.MethodGet, "/api/notes", "eve", nil, http.StatusUnauthorized, "Notes.Unauthorized"},
		{"foreign note", http.MethodGet, "/api/notes/" + noteID, "bob", nil, http.StatusForbidden, "Notes.Forbidden"},
		{"foreign update", http.MethodPut, "/api/notes/" + noteID, "bob", dto.UpdateNoteRequest{Title: "x", Content: "y"}, http.StatusForbidden, "Notes.Forbidden"},
		{"foreign delete", http.MethodDelete, "/api/notes/" + noteID, "bob", nil, http.StatusForbidden, "Notes.Forbidden"},
		{"unknown id", http.MethodGet, "/api/notes/" + uuid.NewString(), "bob", nil, http.StatusNotFound, "Notes.NotFound"},
		{"malformed id", http.MethodGet, "/api/notes/not-a-uuid", "alice", nil, http.StatusBadRequest, "Notes.InvalidID"},
		{"blank title", http.MethodPost, "/api/notes", "alice", dto.CreateNoteRequest{Title: " ", Content: "c"}, http.StatusBadRequest, "Notes.TitleRequired"},
		{"blank content update", http.MethodPut, "/api/notes/" + noteID, "alice", dto.UpdateNoteRequest{Title: "t", Content: ""}, http.StatusBadRequest, "Notes.ContentRequired"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := api.do(t, tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, w.Code)
			var p dto.Problem
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
			assert.Equal(t, tc.code, p.Code)
			assert.NotEmpty(t, p.Message)
		})
	}
}

func TestNotesAPI_MalformedBody(t *testing.T) {
	alice := uuid.New()
	api := newTestAPI(tokenVerifier{"alice": alice})

	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer alice")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Notes.InvalidBody")
}

func TestNotesAPI_PagedListing(t *testing.T) {
	alice := uuid.New()
	api := newTestAPI(tokenVerifier{"alice": alice})

	for i := 0; i < 12; i++ {
		w := api.do(t, http.MethodPost, "/api/notes", "alice", dto.CreateNoteRequest{Title: "t", Content: "c"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := api.do(t, http.MethodGet, "/api/notes?pageNumber=2&pageSize=10", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.PagedNotesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 12, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasPreviousPage)
	assert.False(t, page.HasNextPage)
}

func TestNotesAPI_ResponseNeverExposesOwner(t *testing.T) {
	alice := uuid.New()
	api := newTestAPI(tokenVerifier{"alice": alice})

	w := api.do(t, http.MethodPost, "/api/notes", "alice", dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.Equal(t, http.StatusCreated, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "ownerId")
	assert.NotContains(t, raw, "owner_id")
}
