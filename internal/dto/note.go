package dto

import "time"

// CreateNoteRequest and UpdateNoteRequest carry raw input only. Field rules
// are enforced by the domain entity, not by binding tags, so validation has
// a single home.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse is the public shape of a note. The owner id is never exposed.
type NoteResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedUtc  time.Time `json:"createdUtc"`
	ModifiedUtc time.Time `json:"modifiedUtc"`
}

type PagedNotesResponse struct {
	Items           []NoteResponse `json:"items"`
	PageNumber      int            `json:"pageNumber"`
	PageSize        int            `json:"pageSize"`
	TotalCount      int            `json:"totalCount"`
	TotalPages      int            `json:"totalPages"`
	HasPreviousPage bool           `json:"hasPreviousPage"`
	HasNextPage     bool           `json:"hasNextPage"`
}

// Problem is the body of every error response.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
