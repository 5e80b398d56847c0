// Package contact handles the public contact form and its admin inbox.
package contact

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Message struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Subject   string    `db:"subject" json:"subject"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SubmitRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type Repository interface {
	Create(ctx context.Context, req SubmitRequest) (*Message, error)
	List(ctx context.Context) ([]Message, error)
	Find(ctx context.Context, id int) (*Message, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req SubmitRequest) (*Message, error) {
	query := `
		INSERT INTO contact_messages (name, email, phone, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, phone, subject, body, created_at`

	var m Message
	err := r.db.GetContext(ctx, &m, query, req.Name, req.Email, req.Phone, req.Subject, req.Body)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) List(ctx context.Context) ([]Message, error) {
	query := `SELECT id, name, email, phone, subject, body, created_at FROM contact_messages ORDER BY created_at DESC`

	messages := []Message{}
	err := r.db.SelectContext(ctx, &messages, query)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *repository) Find(ctx context.Context, id int) (*Message, error) {
	query := `SELECT id, name, email, phone, subject, body, created_at FROM contact_messages WHERE id = $1`

	var m Message
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	return err
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Submit godoc
// @Summary      Submit the public contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitRequest  true  "Contact message"
// @Success      201      {object}  Message
// @Failure      400      {object}  api.ErrorResponse
// @Router       /api/contact [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		api.Error(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusCreated, m)
}

// List godoc
// @Summary      Contact inbox (admin)
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Message
// @Router       /api/admin/contact-messages [get]
func (h *Handler) List(c *gin.Context) {
	messages, err := h.repo.List(c.Request.Context())
	if err != nil {
		api.Error(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Delete godoc
// @Summary      Delete a contact message (admin)
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/admin/contact-messages/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	if _, err := h.repo.Find(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			api.Error(c, apperr.NotFound("contact message not found"))
			return
		}
		api.Error(c, apperr.Internal(err))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		api.Error(c, apperr.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
