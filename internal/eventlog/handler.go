package eventlog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Analytics godoc
// @Summary      Platform analytics
// @Description  Returns page-view counts, login/register distribution by role, and the latest events. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  AnalyticsResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/admin/analytics [get]
func (h *Handler) Analytics(c *gin.Context) {
	data, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, data)
}
