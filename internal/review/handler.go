package review

import (
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Submit godoc
// @Summary      Review the member's gym
// @Description  One review per member per gym.
// @Tags         review
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitReviewRequest  true  "Review"
// @Success      201      {object}  Review
// @Failure      403      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/review [post]
func (h *Handler) Submit(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rv, err := h.service.Submit(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, rv)
}

// ListOwnGym godoc
// @Summary      Reviews of the member's gym
// @Tags         review
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Review
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/review [get]
func (h *Handler) ListOwnGym(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reviews, err := h.service.ListOwnGym(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// ListAll godoc
// @Summary      All reviews (admin)
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Review
// @Router       /api/admin/reviews [get]
func (h *Handler) ListAll(c *gin.Context) {
	reviews, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// Delete godoc
// @Summary      Delete a review (admin)
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Review ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/reviews/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
