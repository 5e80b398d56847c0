package chat

import (
	"time"

	"gymdesk/internal/role"
)

// Wire event types broadcast to websocket rooms.
const (
	EventMessage            = "message"
	EventAnnouncement       = "announcement"
	EventAnnouncementUpdate = "announcementUpdate"
	EventAnnouncementDelete = "announcementDelete"
)

type Message struct {
	ID           int       `db:"id" json:"id"`
	SenderID     int       `db:"sender_id" json:"sender_id"`
	SenderRole   role.Role `db:"sender_role" json:"sender_role"`
	ReceiverID   int       `db:"receiver_id" json:"receiver_id"`
	ReceiverRole role.Role `db:"receiver_role" json:"receiver_role"`
	GymID        int       `db:"gym_id" json:"gym_id"`
	Body         string    `db:"body" json:"body"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	SenderName *string `db:"sender_name" json:"sender_name,omitempty"`
}

type Announcement struct {
	ID        int       `db:"id" json:"id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	SenderID  int       `db:"sender_id" json:"sender_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type SendMessageRequest struct {
	ReceiverID int    `json:"receiver_id" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

type AnnouncementRequest struct {
	Body string `json:"body" binding:"required"`
}

// Event is the envelope relayed to every websocket client in a gym room.
type Event struct {
	Type         string        `json:"type"`
	GymID        int           `json:"gym_id"`
	Message      *Message      `json:"message,omitempty"`
	Announcement *Announcement `json:"announcement,omitempty"`
	// Set for announcementDelete, where only the id survives.
	AnnouncementID int `json:"announcement_id,omitempty"`
}
