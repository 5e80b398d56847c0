package chat

import (
	"context"

	"gymdesk/internal/role"
)

// Profile is the slice of a user the relay needs to route a message.
type Profile struct {
	ID    int       `db:"id"`
	Role  role.Role `db:"role"`
	GymID *int      `db:"gym_id"`
}

type Repository interface {
	FindProfile(ctx context.Context, userID int) (*Profile, error)
	OwnerGymID(ctx context.Context, ownerID int) (int, error)

	SaveMessage(ctx context.Context, m *Message) (*Message, error)
	// History returns both directions of a conversation, oldest first.
	History(ctx context.Context, userA, userB, gymID int) ([]Message, error)

	CreateAnnouncement(ctx context.Context, gymID, senderID int, body string) (*Announcement, error)
	FindAnnouncement(ctx context.Context, id int) (*Announcement, error)
	ListAnnouncements(ctx context.Context, gymID int) ([]Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int, body string) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int) error
}
