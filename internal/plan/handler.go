package plan

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

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// RequestPlan godoc
// @Summary      Request a workout or diet plan from a trainer
// @Tags         plan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      RequestPlanRequest  true  "Plan request"
// @Success      201      {object}  PlanRequest
// @Failure      403      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /api/member/plan-requests [post]
func (h *Handler) RequestPlan(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req RequestPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.RequestPlan(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMemberRequests godoc
// @Summary      The member's plan requests
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  PlanRequest
// @Router       /api/member/plan-requests [get]
func (h *Handler) ListMemberRequests(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	reqs, err := h.service.ListMemberRequests(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// ListTrainerRequests godoc
// @Summary      Plan requests addressed to the trainer
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  PlanRequest
// @Router       /api/trainer/plan-requests [get]
func (h *Handler) ListTrainerRequests(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	reqs, err := h.service.ListTrainerRequests(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// ApproveRequest godoc
// @Summary      Approve a plan request
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/trainer/plan-requests/{id}/approve [post]
func (h *Handler) ApproveRequest(c *gin.Context) {
	h.actOnRequest(c, true, "Request approved")
}

// DenyRequest godoc
// @Summary      Deny a plan request
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /api/trainer/plan-requests/{id}/deny [post]
func (h *Handler) DenyRequest(c *gin.Context) {
	h.actOnRequest(c, false, "Request denied")
}

func (h *Handler) actOnRequest(c *gin.Context, approve bool, message string) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.ActOnRequest(c.Request.Context(), ident.ID, id, approve); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// CreateWorkoutPlan godoc
// @Summary      Create a workout plan for a member
// @Description  Also finalizes a matching approved plan request in the same transaction.
// @Tags         plan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateWorkoutPlanRequest  true  "Plan"
// @Success      201      {object}  WorkoutPlan
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/trainer/workout-plans [post]
func (h *Handler) CreateWorkoutPlan(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req CreateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.CreateWorkoutPlan(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListTrainerWorkoutPlans godoc
// @Summary      Workout plans authored by the trainer
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  WorkoutPlan
// @Router       /api/trainer/workout-plans [get]
func (h *Handler) ListTrainerWorkoutPlans(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	plans, err := h.service.ListTrainerWorkoutPlans(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// ListMemberWorkoutPlans godoc
// @Summary      Workout plans assigned to the member
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  WorkoutPlan
// @Router       /api/member/workout-plans [get]
func (h *Handler) ListMemberWorkoutPlans(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	plans, err := h.service.ListMemberWorkoutPlans(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// UpdateWorkoutPlan godoc
// @Summary      Update a workout plan
// @Tags         plan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Plan ID"
// @Param        request  body      UpdateWorkoutPlanRequest  true  "Plan fields"
// @Success      200      {object}  WorkoutPlan
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/trainer/workout-plans/{id} [put]
func (h *Handler) UpdateWorkoutPlan(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateWorkoutPlan(c.Request.Context(), ident.ID, id, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteWorkoutPlan godoc
// @Summary      Delete a workout plan and its scheduled sessions
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/trainer/workout-plans/{id} [delete]
func (h *Handler) DeleteWorkoutPlan(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteWorkoutPlan(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout plan deleted"})
}

// CreateDietPlan godoc
// @Summary      Create a diet plan for a member
// @Tags         plan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateDietPlanRequest  true  "Plan"
// @Success      201      {object}  DietPlan
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/trainer/diet-plans [post]
func (h *Handler) CreateDietPlan(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	var req CreateDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.CreateDietPlan(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ListTrainerDietPlans godoc
// @Summary      Diet plans authored by the trainer
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  DietPlan
// @Router       /api/trainer/diet-plans [get]
func (h *Handler) ListTrainerDietPlans(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	plans, err := h.service.ListTrainerDietPlans(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// ListMemberDietPlans godoc
// @Summary      Diet plans assigned to the member
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  DietPlan
// @Router       /api/member/diet-plans [get]
func (h *Handler) ListMemberDietPlans(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	plans, err := h.service.ListMemberDietPlans(c.Request.Context(), ident.ID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// UpdateDietPlan godoc
// @Summary      Update a diet plan
// @Tags         plan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Plan ID"
// @Param        request  body      UpdateDietPlanRequest  true  "Plan fields"
// @Success      200      {object}  DietPlan
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/trainer/diet-plans/{id} [put]
func (h *Handler) UpdateDietPlan(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateDietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateDietPlan(c.Request.Context(), ident.ID, id, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeleteDietPlan godoc
// @Summary      Delete a diet plan
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Plan ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/trainer/diet-plans/{id} [delete]
func (h *Handler) DeleteDietPlan(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDietPlan(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Diet plan deleted"})
}
