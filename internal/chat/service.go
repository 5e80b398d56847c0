package chat

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/apperr"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/role"
)

// Publisher fans an event out to the gym's websocket room.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type Service interface {
	SendMessage(ctx context.Context, senderID int, req SendMessageRequest) (*Message, error)
	History(ctx context.Context, actorID, otherID int) ([]Message, error)

	CreateAnnouncement(ctx context.Context, ownerID int, req AnnouncementRequest) (*Announcement, error)
	ListAnnouncements(ctx context.Context, actorID int, actorRole role.Role) ([]Announcement, error)
	UpdateAnnouncement(ctx context.Context, ownerID, announcementID int, req AnnouncementRequest) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, ownerID, announcementID int) error
}

type service struct {
	repo Repository
	hub  Publisher
}

func NewService(repo Repository, hub Publisher) Service {
	return &service{repo: repo, hub: hub}
}

// gymScope resolves the gym a chat participant operates in. Gym owners
// chat in the gym they own; members and trainers in the one they joined.
func (s *service) gymScope(ctx context.Context, p *Profile) (int, error) {
	if p.Role == role.Gym {
		gymID, err := s.repo.OwnerGymID(ctx, p.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, apperr.Forbidden("gym profile not found")
			}
			return 0, apperr.Internal(err)
		}
		return gymID, nil
	}

	if p.GymID == nil {
		return 0, apperr.Forbidden("not attached to a gym")
	}

	return *p.GymID, nil
}

func (s *service) profile(ctx context.Context, userID int) (*Profile, error) {
	p, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return p, nil
}

// conversation validates that two users may talk and share a gym.
func (s *service) conversation(ctx context.Context, aID, bID int) (*Profile, *Profile, int, error) {
	a, err := s.profile(ctx, aID)
	if err != nil {
		return nil, nil, 0, err
	}

	b, err := s.profile(ctx, bID)
	if err != nil {
		return nil, nil, 0, err
	}

	if !CanMessage(a.Role, b.Role) {
		return nil, nil, 0, apperr.Forbidden("%s accounts cannot message %s accounts", a.Role, b.Role)
	}

	aGym, err := s.gymScope(ctx, a)
	if err != nil {
		return nil, nil, 0, err
	}

	bGym, err := s.gymScope(ctx, b)
	if err != nil {
		return nil, nil, 0, err
	}

	if aGym != bGym {
		return nil, nil, 0, apperr.Forbidden("users belong to different gyms")
	}

	return a, b, aGym, nil
}

func (s *service) SendMessage(ctx context.Context, senderID int, req SendMessageRequest) (*Message, error) {
	if req.Body == "" {
		return nil, apperr.Validation("message body is required")
	}

	sender, receiver, gymID, err := s.conversation(ctx, senderID, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.SaveMessage(ctx, &Message{
		SenderID:     sender.ID,
		SenderRole:   sender.Role,
		ReceiverID:   receiver.ID,
		ReceiverRole: receiver.Role,
		GymID:        gymID,
		Body:         req.Body,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.RecordChatMessage()

	if err := s.hub.Publish(ctx, Event{Type: EventMessage, GymID: gymID, Message: saved}); err != nil {
		logger.Error("Failed to publish chat message", "message_id", saved.ID, "error", err)
	}

	return saved, nil
}

func (s *service) History(ctx context.Context, actorID, otherID int) ([]Message, error) {
	_, _, gymID, err := s.conversation(ctx, actorID, otherID)
	if err != nil {
		return nil, err
	}

	messages, err := s.repo.History(ctx, actorID, otherID, gymID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return messages, nil
}

func (s *service) ownGymID(ctx context.Context, ownerID int) (int, error) {
	gymID, err := s.repo.OwnerGymID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("gym profile not found")
		}
		return 0, apperr.Internal(err)
	}
	return gymID, nil
}

func (s *service) CreateAnnouncement(ctx context.Context, ownerID int, req AnnouncementRequest) (*Announcement, error) {
	gymID, err := s.ownGymID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.CreateAnnouncement(ctx, gymID, ownerID, req.Body)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.RecordAnnouncement("created")

	if err := s.hub.Publish(ctx, Event{Type: EventAnnouncement, GymID: gymID, Announcement: a}); err != nil {
		logger.Error("Failed to publish announcement", "announcement_id", a.ID, "error", err)
	}

	return a, nil
}

func (s *service) ListAnnouncements(ctx context.Context, actorID int, actorRole role.Role) ([]Announcement, error) {
	p := &Profile{ID: actorID, Role: actorRole}
	if actorRole != role.Gym {
		loaded, err := s.profile(ctx, actorID)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	gymID, err := s.gymScope(ctx, p)
	if err != nil {
		return nil, err
	}

	announcements, err := s.repo.ListAnnouncements(ctx, gymID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return announcements, nil
}

func (s *service) ownedAnnouncement(ctx context.Context, ownerID, announcementID int) (*Announcement, int, error) {
	gymID, err := s.ownGymID(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	a, err := s.repo.FindAnnouncement(ctx, announcementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, apperr.NotFound("announcement not found")
		}
		return nil, 0, apperr.Internal(err)
	}

	if a.GymID != gymID {
		return nil, 0, apperr.Forbidden("announcement belongs to another gym")
	}

	return a, gymID, nil
}

func (s *service) UpdateAnnouncement(ctx context.Context, ownerID, announcementID int, req AnnouncementRequest) (*Announcement, error) {
	a, gymID, err := s.ownedAnnouncement(ctx, ownerID, announcementID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateAnnouncement(ctx, a.ID, req.Body)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.RecordAnnouncement("updated")

	if err := s.hub.Publish(ctx, Event{Type: EventAnnouncementUpdate, GymID: gymID, Announcement: updated}); err != nil {
		logger.Error("Failed to publish announcement update", "announcement_id", updated.ID, "error", err)
	}

	return updated, nil
}

func (s *service) DeleteAnnouncement(ctx context.Context, ownerID, announcementID int) error {
	a, gymID, err := s.ownedAnnouncement(ctx, ownerID, announcementID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAnnouncement(ctx, a.ID); err != nil {
		return apperr.Internal(err)
	}

	metrics.RecordAnnouncement("deleted")

	if err := s.hub.Publish(ctx, Event{Type: EventAnnouncementDelete, GymID: gymID, AnnouncementID: a.ID}); err != nil {
		logger.Error("Failed to publish announcement delete", "announcement_id", a.ID, "error", err)
	}

	return nil
}
