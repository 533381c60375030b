package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thechaoticengineer/CloudScribe/internal/dto"
)

// APIError is a non-2xx answer from the backend, decoded into its problem
// body when possible.
type APIError struct {
	Status  int
	Problem dto.Problem
}

func (e *APIError) Error() string {
	if e.Problem.Code != "" {
		return fmt.Sprintf("api returned %d: %s: %s", e.Status, e.Problem.Code, e.Problem.Message)
	}
	return fmt.Sprintf("api returned %d", e.Status)
}

// NotesClient consumes the backend purely over its HTTP contract. The caller
// supplies a fresh access token per call.
type NotesClient struct {
	baseURL string
	http    *http.Client
}

func NewNotesClient(baseURL string) *NotesClient {
	return &NotesClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *NotesClient) List(ctx context.Context, token string, pageNumber, pageSize int) (dto.PagedNotesResponse, error) {
	var page dto.PagedNotesResponse
	path := fmt.Sprintf("/api/notes?pageNumber=%d&pageSize=%d", pageNumber, pageSize)
	err := c.do(ctx, token, http.MethodGet, path, nil, &page)
	return page, err
}

func (c *NotesClient) Get(ctx context.Context, token, id string) (dto.NoteResponse, error) {
	var note dto.NoteResponse
	err := c.do(ctx, token, http.MethodGet, "/api/notes/"+id, nil, &note)
	return note, err
}

func (c *NotesClient) Create(ctx context.Context, token string, req dto.CreateNoteRequest) (dto.NoteResponse, error) {
	var note dto.NoteResponse
	err := c.do(ctx, token, http.MethodPost, "/api/notes", req, &note)
	return note, err
}

func (c *NotesClient) Update(ctx context.Context, token, id string, req dto.UpdateNoteRequest) (dto.NoteResponse, error) {
	var note dto.NoteResponse
	err := c.do(ctx, token, http.MethodPut, "/api/notes/"+id, req, &note)
	return note, err
}

func (c *NotesClient) Delete(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/api/notes/"+id, nil, nil)
}

func (c *NotesClient) do(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Problem)
		return apiErr
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
