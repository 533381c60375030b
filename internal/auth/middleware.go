package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thechaoticengineer/CloudScribe/internal/dto"
	"github.com/thechaoticengineer/CloudScribe/internal/result"
)

const contextKeyUserID = "user_id"

// UserID returns the authenticated user id set by RequireUser. uuid.Nil if
// the middleware did not run.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// RequireUser returns a middleware that validates the bearer token and puts
// the resolved user id in the request context. The id is resolved exactly
// once here; handlers pass it to the service as a plain parameter.
func RequireUser(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}
		userID, err := v.Verify(c.Request.Context(), raw)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthorized(c *gin.Context) {
	e := result.Unauthorized("Notes.Unauthorized", "a valid bearer token is required")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Problem{Code: e.Code, Message: e.Message})
}
