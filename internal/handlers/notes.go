package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thechaoticengineer/CloudScribe/internal/auth"
	"github.com/thechaoticengineer/CloudScribe/internal/domain"
	"github.com/thechaoticengineer/CloudScribe/internal/dto"
	"github.com/thechaoticengineer/CloudScribe/internal/result"
	"github.com/thechaoticengineer/CloudScribe/internal/service"
)

type NoteHandler struct {
	svc *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// GetAll godoc
// @Summary      List the current user's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        pageNumber  query     int  false  "Page number (default 1)"
// @Param        pageSize    query     int  false  "Page size (default 10)"
// @Success      200  {object}  dto.PagedNotesResponse
// @Failure      401  {object}  dto.Problem
// @Router       /api/notes [get]
func (h *NoteHandler) GetAll(c *gin.Context) {
	pageNumber := dto.QueryInt(c, "pageNumber", service.DefaultPageNumber)
	pageSize := dto.QueryInt(c, "pageSize", service.DefaultPageSize)

	r := h.svc.GetAll(c.Request.Context(), auth.UserID(c), pageNumber, pageSize)
	if !r.IsSuccess() {
		writeError(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, pageToResponse(r.Value()))
}

// GetById godoc
// @Summary      Get a note by id
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  dto.NoteResponse
// @Failure      401  {object}  dto.Problem
// @Failure      403  {object}  dto.Problem
// @Failure      404  {object}  dto.Problem
// @Router       /api/notes/{id} [get]
func (h *NoteHandler) GetById(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	r := h.svc.GetById(c.Request.Context(), auth.UserID(c), id)
	if !r.IsSuccess() {
		writeError(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, noteToResponse(r.Value()))
}

// Create godoc
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateNoteRequest  true  "Note body"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.Problem
// @Failure      401   {object}  dto.Problem
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, result.Validation("Notes.InvalidBody", "request body must be valid JSON"))
		return
	}
	r := h.svc.Create(c.Request.Context(), auth.UserID(c), req.Title, req.Content)
	if !r.IsSuccess() {
		writeError(c, r.Err())
		return
	}
	note := r.Value()
	c.Header("Location", "/api/notes/"+note.ID.String())
	c.JSON(http.StatusCreated, noteToResponse(note))
}

// Update godoc
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Note id"
// @Param        body  body      dto.UpdateNoteRequest  true  "New title and content"
// @Success      200   {object}  dto.NoteResponse
// @Failure      400   {object}  dto.Problem
// @Failure      401   {object}  dto.Problem
// @Failure      403   {object}  dto.Problem
// @Failure      404   {object}  dto.Problem
// @Router       /api/notes/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, result.Validation("Notes.InvalidBody", "request body must be valid JSON"))
		return
	}
	r := h.svc.Update(c.Request.Context(), auth.UserID(c), id, req.Title, req.Content)
	if !r.IsSuccess() {
		writeError(c, r.Err())
		return
	}
	c.JSON(http.StatusOK, noteToResponse(r.Value()))
}

// Delete godoc
// @Summary      Delete a note
// @Tags         notes
// @Security     BearerAuth
// @Param        id   path  string  true  "Note id"
// @Success      204
// @Failure      401  {object}  dto.Problem
// @Failure      403  {object}  dto.Problem
// @Failure      404  {object}  dto.Problem
// @Router       /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	r := h.svc.Delete(c.Request.Context(), auth.UserID(c), id)
	if !r.IsSuccess() {
		writeError(c, r.Err())
		return
	}
	c.Status(http.StatusNoContent)
}

func noteID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, result.Validation("Notes.InvalidID", "note id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func noteToResponse(n domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:          n.ID.String(),
		Title:       n.Title,
		Content:     n.Content,
		CreatedUtc:  n.CreatedUtc,
		ModifiedUtc: n.ModifiedUtc,
	}
}

func pageToResponse(p result.Page[domain.Note]) dto.PagedNotesResponse {
	items := make([]dto.NoteResponse, len(p.Items))
	for i := range p.Items {
		items[i] = noteToResponse(p.Items[i])
	}
	return dto.PagedNotesResponse{
		Items:           items,
		PageNumber:      p.PageNumber,
		PageSize:        p.PageSize,
		TotalCount:      p.TotalCount,
		TotalPages:      p.TotalPages(),
		HasPreviousPage: p.HasPreviousPage(),
		HasNextPage:     p.HasNextPage(),
	}
}
