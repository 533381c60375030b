package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thechaoticengineer/CloudScribe/internal/dto"
	"github.com/thechaoticengineer/CloudScribe/internal/result"
)

// statusFor is the one place error kinds become status codes.
func statusFor(kind result.Kind) int {
	switch kind {
	case result.KindValidation:
		return http.StatusBadRequest
	case result.KindNotFound:
		return http.StatusNotFound
	case result.KindConflict:
		return http.StatusConflict
	case result.KindUnauthorized:
		return http.StatusUnauthorized
	case result.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders the problem body for err. Internal failures are logged
// with their real message and answered with a generic one.
func writeError(c *gin.Context, err *result.Error) {
	body := dto.Problem{Code: err.Code, Message: err.Message}
	if err.Kind == result.KindFailure {
		log.Error().Str("code", err.Code).Str("path", c.FullPath()).Msg(err.Message)
		body.Message = "an unexpected error occurred"
	}
	c.JSON(statusFor(err.Kind), body)
}
