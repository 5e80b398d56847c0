package chat

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const messageColumns = `id, sender_id, sender_role, receiver_id, receiver_role, gym_id, body, created_at`

const announcementColumns = `id, gym_id, sender_id, body, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindProfile(ctx context.Context, userID int) (*Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p, `SELECT id, role, gym_id FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) OwnerGymID(ctx context.Context, ownerID int) (int, error) {
	var gymID int
	err := r.db.GetContext(ctx, &gymID, `SELECT id FROM gyms WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, err
	}

	return gymID, nil
}

func (r *repository) SaveMessage(ctx context.Context, m *Message) (*Message, error) {
	query := `
		INSERT INTO chat_messages (sender_id, sender_role, receiver_id, receiver_role, gym_id, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + messageColumns

	var saved Message
	err := r.db.GetContext(ctx, &saved, query,
		m.SenderID, m.SenderRole.String(), m.ReceiverID, m.ReceiverRole.String(), m.GymID, m.Body)
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *repository) History(ctx context.Context, userA, userB, gymID int) ([]Message, error) {
	query := `
		SELECT cm.id, cm.sender_id, cm.sender_role, cm.receiver_id, cm.receiver_role, cm.gym_id, cm.body, cm.created_at,
			s.name AS sender_name
		FROM chat_messages cm
		JOIN users s ON s.id = cm.sender_id
		WHERE cm.gym_id = $3
			AND ((cm.sender_id = $1 AND cm.receiver_id = $2) OR (cm.sender_id = $2 AND cm.receiver_id = $1))
		ORDER BY cm.created_at ASC`

	messages := []Message{}
	err := r.db.SelectContext(ctx, &messages, query, userA, userB, gymID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *repository) CreateAnnouncement(ctx context.Context, gymID, senderID int, body string) (*Announcement, error) {
	query := `
		INSERT INTO announcements (gym_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING ` + announcementColumns

	var a Announcement
	err := r.db.GetContext(ctx, &a, query, gymID, senderID, body)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindAnnouncement(ctx context.Context, id int) (*Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`

	var a Announcement
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) ListAnnouncements(ctx context.Context, gymID int) ([]Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE gym_id = $1 ORDER BY created_at DESC`

	announcements := []Announcement{}
	err := r.db.SelectContext(ctx, &announcements, query, gymID)
	if err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *repository) UpdateAnnouncement(ctx context.Context, id int, body string) (*Announcement, error) {
	query := `
		UPDATE announcements
		SET body = $1, updated_at = now()
		WHERE id = $2
		RETURNING ` + announcementColumns

	var a Announcement
	err := r.db.GetContext(ctx, &a, query, body, id)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) DeleteAnnouncement(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	return err
}
