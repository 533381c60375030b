package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt reads a positive integer query parameter, falling back when the
// value is missing or not a positive number.
func QueryInt(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
