package chat

import (
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API serves browsers on other origins; auth happens via JWT.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service Service
	hub     *Hub
}

func NewHandler(service Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

// SendMessage godoc
// @Summary      Send a chat message
// @Description  Persists the message and broadcasts it to the gym room.
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SendMessageRequest  true  "Message"
// @Success      201      {object}  Message
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/chat/messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.service.SendMessage(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// History godoc
// @Summary      Conversation history with another user
// @Description  Returns both directions of the conversation, oldest first.
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Param        userId  path      int  true  "Other user ID"
// @Success      200     {array}   Message
// @Failure      403     {object}  api.ErrorResponse
// @Router       /api/chat/history/{userId} [get]
func (h *Handler) History(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	otherID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	messages, err := h.service.History(c.Request.Context(), ident.ID, otherID)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// CreateAnnouncement godoc
// @Summary      Post a gym announcement
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      AnnouncementRequest  true  "Announcement"
// @Success      201      {object}  Announcement
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/gym/announcements [post]
func (h *Handler) CreateAnnouncement(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.service.CreateAnnouncement(c.Request.Context(), ident.ID, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ListAnnouncements godoc
// @Summary      Announcements for the actor's gym
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Announcement
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/chat/announcements [get]
func (h *Handler) ListAnnouncements(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	announcements, err := h.service.ListAnnouncements(c.Request.Context(), ident.ID, ident.Role)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, announcements)
}

// UpdateAnnouncement godoc
// @Summary      Edit an announcement
// @Tags         chat
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Announcement ID"
// @Param        request  body      AnnouncementRequest  true  "New body"
// @Success      200      {object}  Announcement
// @Failure      403      {object}  api.ErrorResponse
// @Router       /api/gym/announcements/{id} [put]
func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.service.UpdateAnnouncement(c.Request.Context(), ident.ID, id, req)
	if err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// DeleteAnnouncement godoc
// @Summary      Delete an announcement
// @Tags         chat
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Announcement ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      403  {object}  api.ErrorResponse
// @Router       /api/gym/announcements/{id} [delete]
func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	if err := h.service.DeleteAnnouncement(c.Request.Context(), ident.ID, id); err != nil {
		api.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}

// ServeWS upgrades the connection and starts the client pumps. Clients
// join a gym room with {"type":"join","gym_id":N}; messages sent over
// the socket are persisted and broadcast like their REST counterpart.
func (h *Handler) ServeWS(c *gin.Context) {
	ident, ok := auth.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Websocket upgrade failed", "user_id", ident.ID, "error", err)
		return
	}

	client := newClient(h.hub, conn, ident.ID)

	go client.writePump()
	go client.readPump(h.service)
}
