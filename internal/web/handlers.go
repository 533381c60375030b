package web

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thechaoticengineer/CloudScribe/internal/dto"
	"github.com/thechaoticengineer/CloudScribe/internal/service"
)

const (
	sessionCookieName = "cs_session"
	stateCookieName   = "cs_oauth_state"
)

// Handler serves the server-rendered notes UI. It holds no note state of its
// own: every page is built from a fresh API call.
type Handler struct {
	sessions *SessionStore
	authn    *Authenticator
	notes    *NotesClient
}

func NewHandler(sessions *SessionStore, authn *Authenticator, notes *NotesClient) *Handler {
	return &Handler{sessions: sessions, authn: authn, notes: notes}
}

// Register mounts all UI and auth routes.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.NotesPage)
	r.GET("/notes/new", h.NewNoteForm)
	r.POST("/notes", h.CreateNote)
	r.GET("/notes/:id/edit", h.EditNoteForm)
	r.POST("/notes/:id", h.UpdateNote)
	r.POST("/notes/:id/delete", h.DeleteNote)

	r.GET("/auth/login", h.Login)
	r.GET("/auth/callback", h.Callback)
	r.POST("/auth/logout", h.Logout)
}

// notesPageData feeds notes.html. Prev/NextPage are precomputed because
// templates do no arithmetic.
type notesPageData struct {
	Items           []dto.NoteResponse
	PageNumber      int
	TotalPages      int
	TotalCount      int
	HasPreviousPage bool
	HasNextPage     bool
	PrevPage        int
	NextPage        int
}

type noteFormData struct {
	Heading string
	Action  string
	Title   string
	Content string
	Error   string
}

func (h *Handler) NotesPage(c *gin.Context) {
	token, ok := h.accessToken(c)
	if !ok {
		return
	}
	pageNumber := dto.QueryInt(c, "page", service.DefaultPageNumber)

	page, err := h.notes.List(c.Request.Context(), token, pageNumber, service.DefaultPageSize)
	if err != nil {
		h.renderAPIError(c, err)
		return
	}
	c.HTML(http.StatusOK, "notes.html", notesPageData{
		Items:           page.Items,
		PageNumber:      page.PageNumber,
		TotalPages:      page.TotalPages,
		TotalCount:      page.TotalCount,
		HasPreviousPage: page.HasPreviousPage,
		HasNextPage:     page.HasNextPage,
		PrevPage:        page.PageNumber - 1,
		NextPage:        page.PageNumber + 1,
	})
}

func (h *Handler) NewNoteForm(c *gin.Context) {
	if _, ok := h.accessToken(c); !ok {
		return
	}
	c.HTML(http.StatusOK, "note_form.html", noteFormData{
		Heading: "New note",
		Action:  "/notes",
	})
}

func (h *Handler) CreateNote(c *gin.Context) {
	token, ok := h.accessToken(c)
	if !ok {
		return
	}
	req := dto.CreateNoteRequest{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}
	if _, err := h.notes.Create(c.Request.Context(), token, req); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			c.HTML(http.StatusBadRequest, "note_form.html", noteFormData{
				Heading: "New note",
				Action:  "/notes",
				Title:   req.Title,
				Content: req.Content,
				Error:   apiErr.Problem.Message,
			})
			return
		}
		h.renderAPIError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) EditNoteForm(c *gin.Context) {
	token, ok := h.accessToken(c)
	if !ok {
		return
	}
	id := c.Param("id")
	note, err := h.notes.Get(c.Request.Context(), token, id)
	if err != nil {
		h.renderAPIError(c, err)
		return
	}
	c.HTML(http.StatusOK, "note_form.html", noteFormData{
		Heading: "Edit note",
		Action:  "/notes/" + id,
		Title:   note.Title,
		Content: note.Content,
	})
}

func (h *Handler) UpdateNote(c *gin.Context) {
	token, ok := h.accessToken(c)
	if !ok {
		return
	}
	id := c.Param("id")
	req := dto.UpdateNoteRequest{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}
	if _, err := h.notes.Update(c.Request.Context(), token, id, req); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			c.HTML(http.StatusBadRequest, "note_form.html", noteFormData{
				Heading: "Edit note",
				Action:  "/notes/" + id,
				Title:   req.Title,
				Content: req.Content,
				Error:   apiErr.Problem.Message,
			})
			return
		}
		h.renderAPIError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) DeleteNote(c *gin.Context) {
	token, ok := h.accessToken(c)
	if !ok {
		return
	}
	if err := h.notes.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		h.renderAPIError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Login sends the browser to the identity provider with a one-shot state
// cookie.
func (h *Handler) Login(c *gin.Context) {
	state, err := newStateValue()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "could not start login"})
		return
	}
	c.SetCookie(stateCookieName, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, h.authn.AuthCodeURL(state))
}

func (h *Handler) Callback(c *gin.Context) {
	wantState, err := c.Cookie(stateCookieName)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "login state mismatch, try again"})
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	token, subject, err := h.authn.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		log.Error().Err(err).Msg("code exchange failed")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"Message": "login failed, try again"})
		return
	}

	sessionID, err := h.sessions.Create(c.Request.Context(), Session{Subject: subject, Token: token})
	if err != nil {
		log.Error().Err(err).Msg("session create failed")
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "login failed, try again"})
		return
	}
	c.SetCookie(sessionCookieName, sessionID, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(sessionCookieName); err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.HTML(http.StatusOK, "login.html", nil)
}

// accessToken resolves the current session and returns a live access token,
// refreshing and re-saving the token set when it has expired. A false return
// means the caller was already redirected to login.
func (h *Handler) accessToken(c *gin.Context) (string, bool) {
	sessionID, err := c.Cookie(sessionCookieName)
	if err != nil || sessionID == "" {
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return "", false
	}
	sess, ok := h.sessions.Get(c.Request.Context(), sessionID)
	if !ok {
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return "", false
	}

	token, err := h.authn.TokenSource(c.Request.Context(), sess.Token).Token()
	if err != nil {
		// Refresh token expired or revoked: force a fresh login.
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
		c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return "", false
	}
	if token.AccessToken != sess.Token.AccessToken {
		sess.Token = token
		if err := h.sessions.Save(c.Request.Context(), sessionID, sess); err != nil {
			log.Warn().Err(err).Msg("could not persist refreshed token")
		}
	}
	return token.AccessToken, true
}

// renderAPIError turns a backend failure into a page. A 401 from the API
// means the token no longer satisfies the backend: start over at login.
func (h *Handler) renderAPIError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			c.Redirect(http.StatusFound, "/auth/login")
			return
		}
		c.HTML(apiErr.Status, "error.html", gin.H{"Message": apiErr.Problem.Message})
		return
	}
	log.Error().Err(err).Msg("api call failed")
	c.HTML(http.StatusBadGateway, "error.html", gin.H{"Message": "the notes service is unavailable"})
}

func newStateValue() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
