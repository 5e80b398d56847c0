package api

import (
	"gymdesk/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Error writes the taxonomy-mapped status and message for err.
func Error(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
}
