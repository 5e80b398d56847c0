package progress

import (
	"io"
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

const maxPhotoSize = 5 << 20

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func identity(c *gin.Context) (auth.Identity, bool) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return ident, ok
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// LogMacros godoc
// @Summary      Log a meal's macros
// @Tags         progress
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      MacroLogRequest  true  "Macro entry"
// @Success      201      {object}  MacroLog
// @Failure      400      {object}  api.ErrorResponse
// @Router       /api/member/macros [post]
func (h *Handler) LogMacros(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req MacroLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.LogMacros(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ListMacros godoc
// @Summary      The member's macro history
// @Tags         progress
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  MacroLog
// @Router       /api/member/macros [get]
func (h *Handler) ListMacros(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	logs, err := h.service.ListMacros(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// DeleteMacroLog godoc
// @Summary      Delete a macro entry
// @Tags         progress
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Macro log ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/member/macros/{id} [delete]
func (h *Handler) DeleteMacroLog(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMacroLog(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Macro log deleted"})
}

// LogProgress godoc
// @Summary      Record a body measurement
// @Tags         progress
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ProgressLogRequest  true  "Measurement"
// @Success      201      {object}  ProgressLog
// @Failure      400      {object}  api.ErrorResponse
// @Router       /api/member/progress [post]
func (h *Handler) LogProgress(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req ProgressLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.LogProgress(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListProgress godoc
// @Summary      The member's measurement history
// @Tags         progress
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  ProgressLog
// @Router       /api/member/progress [get]
func (h *Handler) ListProgress(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	logs, err := h.service.ListProgress(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// AddPhoto godoc
// @Summary      Attach a progress photo to a measurement
// @Tags         progress
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      int   true  "Progress log ID"
// @Param        photo  formData  file  true  "Photo file"
// @Success      200    {object}  ProgressLog
// @Failure      400    {object}  api.ErrorResponse
// @Failure      404    {object}  api.ErrorResponse
// @Router       /api/member/progress/{id}/photos [post]
func (h *Handler) AddPhoto(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
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

	p, err := h.service.AddPhoto(c.Request.Context(), ident.ID, id, fileHeader.Filename, data)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteProgressLog godoc
// @Summary      Delete a measurement
// @Tags         progress
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Progress log ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/member/progress/{id} [delete]
func (h *Handler) DeleteProgressLog(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProgressLog(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress log deleted"})
}
