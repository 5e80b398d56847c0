package gym

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/role"

	"github.com/gin-gonic/gin"
)

const maxPhotoSize = 5 << 20 // 5 MiB

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListGyms godoc
// @Summary      List gyms
// @Tags         gym
// @Produce      json
// @Success      200  {array}   Gym
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/gym/list [get]
func (h *Handler) ListGyms(c *gin.Context) {
	gyms, err := h.service.ListGyms(c.Request.Context())
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// GetGym godoc
// @Summary      Gym details with members and trainers
// @Tags         gym
// @Produce      json
// @Param        id   path      int  true  "Gym ID"
// @Success      200  {object}  GymDetail
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/gym/{id} [get]
func (h *Handler) GetGym(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gym ID"})
		return
	}

	detail, err := h.service.GetGym(c.Request.Context(), id)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Join godoc
// @Summary      Request to join a gym
// @Description  Members must pick a membership duration; trainers join without one.
// @Tags         gym
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      JoinGymRequest  true  "Join request"
// @Success      201      {object}  JoinRequest
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/member/join-gym [post]
func (h *Handler) Join(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req JoinGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Join(c.Request.Context(), ident.ID, ident.Role, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListRequests godoc
// @Summary      Pending join requests for the actor's gym
// @Tags         gym
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   JoinRequest
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/gym/requests [get]
func (h *Handler) ListRequests(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reqs, err := h.service.ListRequests(c.Request.Context(), ident.ID, ident.Role)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// AcceptRequest godoc
// @Summary      Accept a join request
// @Tags         gym
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/gym/requests/{id}/accept [post]
func (h *Handler) AcceptRequest(c *gin.Context) {
	h.actOnRequest(c, h.service.Accept, "Request accepted")
}

// DenyRequest godoc
// @Summary      Deny a join request
// @Tags         gym
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/gym/requests/{id}/deny [post]
func (h *Handler) DenyRequest(c *gin.Context) {
	h.actOnRequest(c, h.service.Deny, "Request denied")
}

func (h *Handler) actOnRequest(c *gin.Context, act func(ctx context.Context, actorID int, actorRole role.Role, requestID int) error, message string) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := act(c.Request.Context(), ident.ID, ident.Role, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Update godoc
// @Summary      Update gym profile and membership plans
// @Tags         gym
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateGymRequest  true  "Profile fields"
// @Success      200      {object}  Gym
// @Failure      400      {object}  api.ErrorResponse
// @Router       /api/gym/profile [put]
func (h *Handler) Update(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AddPhoto godoc
// @Summary      Upload a gym photo
// @Tags         gym
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo  formData  file  true  "Photo file"
// @Success      200    {object}  Gym
// @Failure      400    {object}  api.ErrorResponse
// @Router       /api/gym/photos [post]
func (h *Handler) AddPhoto(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 5MB limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}

	updated, err := h.service.AddPhoto(c.Request.Context(), ident.ID, fileHeader.Filename, data)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeletePhoto godoc
// @Summary      Delete a gym photo
// @Tags         gym
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      map[string]string  true  "Photo URL payload"
// @Success      200      {object}  api.MessageResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /api/gym/photos [delete]
func (h *Handler) DeletePhoto(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if err := h.service.DeletePhoto(c.Request.Context(), ident.ID, req.URL); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted"})
}

// DeleteGym godoc
// @Summary      Delete a gym (admin)
// @Description  Removes the gym and detaches its members and trainers.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Gym ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/gyms/{id} [delete]
func (h *Handler) DeleteGym(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gym ID"})
		return
	}

	if err := h.service.DeleteGym(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gym deleted"})
}
