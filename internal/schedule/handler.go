package schedule

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

// PublishSlot godoc
// @Summary      Publish an available slot
// @Description  Rejects windows that overlap any of the trainer's existing slots.
// @Tags         schedule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PublishSlotRequest  true  "Slot window (RFC3339)"
// @Success      201      {object}  Slot
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/trainer/slots [post]
func (h *Handler) PublishSlot(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req PublishSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.service.PublishSlot(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ListAvailableSlots godoc
// @Summary      Future available slots at the member's gym
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Slot
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/member/slots [get]
func (h *Handler) ListAvailableSlots(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	slots, err := h.service.ListAvailableSlots(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// BookSlot godoc
// @Summary      Book an available slot
// @Description  The transition is atomic; losing a race yields 409.
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Slot ID"
// @Success      200  {object}  Slot
// @Failure      403  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/member/slots/{id}/book [post]
func (h *Handler) BookSlot(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	slot, err := h.service.BookSlot(c.Request.Context(), ident.ID, id)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// DeleteSlot godoc
// @Summary      Delete an unbooked slot
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Slot ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/trainer/slots/{id} [delete]
func (h *Handler) DeleteSlot(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSlot(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}

// ListTrainerSlots godoc
// @Summary      All of the trainer's slots
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Slot
// @Router       /api/trainer/slots [get]
func (h *Handler) ListTrainerSlots(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	slots, err := h.service.ListTrainerSlots(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// ListTrainerBookings godoc
// @Summary      Booked sessions for the trainer
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Slot
// @Router       /api/trainer/bookings [get]
func (h *Handler) ListTrainerBookings(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	slots, err := h.service.ListTrainerBookings(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// ListMemberBookings godoc
// @Summary      Booked sessions for the member
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Slot
// @Router       /api/member/bookings [get]
func (h *Handler) ListMemberBookings(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	slots, err := h.service.ListMemberBookings(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// CreateSchedule godoc
// @Summary      Schedule a workout plan session
// @Tags         schedule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateScheduleRequest  true  "Session"
// @Success      201      {object}  WorkoutSchedule
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/trainer/schedules [post]
func (h *Handler) CreateSchedule(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.service.CreateSchedule(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ws)
}

// ListTrainerSchedules godoc
// @Summary      Scheduled sessions created by the trainer
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  WorkoutSchedule
// @Router       /api/trainer/schedules [get]
func (h *Handler) ListTrainerSchedules(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	schedules, err := h.service.ListTrainerSchedules(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// ListMemberSchedules godoc
// @Summary      Scheduled sessions for the member
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  WorkoutSchedule
// @Router       /api/member/schedules [get]
func (h *Handler) ListMemberSchedules(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	schedules, err := h.service.ListMemberSchedules(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// UpdateSchedule godoc
// @Summary      Move a scheduled session
// @Tags         schedule
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Schedule ID"
// @Param        request  body      UpdateScheduleRequest  true  "New time"
// @Success      200      {object}  WorkoutSchedule
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/trainer/schedules/{id} [put]
func (h *Handler) UpdateSchedule(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := h.service.UpdateSchedule(c.Request.Context(), ident.ID, id, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ws)
}

// DeleteSchedule godoc
// @Summary      Delete a scheduled session
// @Tags         schedule
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Schedule ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/trainer/schedules/{id} [delete]
func (h *Handler) DeleteSchedule(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSchedule(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}
