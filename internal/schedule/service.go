package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymdesk/internal/apperr"
	"gymdesk/internal/eventlog"
	"gymdesk/internal/logger"
	"gymdesk/internal/metrics"
	"gymdesk/internal/role"
)

// Mailer is the slice of the email service booking needs.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to, name, trainerName string, start, end time.Time) error
}

type Service interface {
	PublishSlot(ctx context.Context, trainerID int, req PublishSlotRequest) (*Slot, error)
	ListAvailableSlots(ctx context.Context, memberID int) ([]Slot, error)
	BookSlot(ctx context.Context, memberID, slotID int) (*Slot, error)
	DeleteSlot(ctx context.Context, trainerID, slotID int) error
	ListTrainerSlots(ctx context.Context, trainerID int) ([]Slot, error)
	ListTrainerBookings(ctx context.Context, trainerID int) ([]Slot, error)
	ListMemberBookings(ctx context.Context, memberID int) ([]Slot, error)

	CreateSchedule(ctx context.Context, trainerID int, req CreateScheduleRequest) (*WorkoutSchedule, error)
	ListTrainerSchedules(ctx context.Context, trainerID int) ([]WorkoutSchedule, error)
	ListMemberSchedules(ctx context.Context, memberID int) ([]WorkoutSchedule, error)
	UpdateSchedule(ctx context.Context, trainerID, scheduleID int, req UpdateScheduleRequest) (*WorkoutSchedule, error)
	DeleteSchedule(ctx context.Context, trainerID, scheduleID int) error
}

type service struct {
	repo   Repository
	mailer Mailer
	events eventlog.Service
	now    func() time.Time
}

func NewService(repo Repository, mailer Mailer, events eventlog.Service) Service {
	return &service{
		repo:   repo,
		mailer: mailer,
		events: events,
		now:    time.Now,
	}
}

func (s *service) gymOf(ctx context.Context, userID int) (int, error) {
	gymID, err := s.repo.GymIDOfUser(ctx, userID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if gymID == nil {
		return 0, apperr.Forbidden("not attached to a gym")
	}
	return *gymID, nil
}

func (s *service) PublishSlot(ctx context.Context, trainerID int, req PublishSlotRequest) (*Slot, error) {
	gymID, err := s.gymOf(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperr.Validation("start_time must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, apperr.Validation("end_time must be RFC3339")
	}

	if !end.After(start) {
		return nil, apperr.Validation("end_time must be after start_time")
	}

	overlap, err := s.repo.HasOverlap(ctx, trainerID, start, end)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if overlap {
		return nil, apperr.Conflict("slot overlaps an existing slot")
	}

	slot, err := s.repo.CreateSlot(ctx, trainerID, gymID, start, end)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	metrics.RecordSlotPublished()

	return slot, nil
}

func (s *service) ListAvailableSlots(ctx context.Context, memberID int) ([]Slot, error) {
	gymID, err := s.gymOf(ctx, memberID)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.ListAvailable(ctx, gymID, s.now())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return slots, nil
}

func (s *service) BookSlot(ctx context.Context, memberID, slotID int) (*Slot, error) {
	slot, err := s.repo.FindSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("slot not found")
		}
		return nil, apperr.Internal(err)
	}

	gymID, err := s.gymOf(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if slot.GymID != gymID {
		return nil, apperr.Forbidden("slot belongs to another gym")
	}

	if slot.StartTime.Before(s.now()) {
		return nil, apperr.Validation("cannot book a slot in the past")
	}

	booked, err := s.repo.TryBook(ctx, slotID, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !booked {
		metrics.RecordSlotBooking("conflict")
		return nil, apperr.Conflict("slot no longer available")
	}

	metrics.RecordSlotBooking("success")
	s.events.Record(ctx, "Slot Booked", "N/A", memberID, role.Member, "")

	s.sendConfirmation(ctx, memberID, slot)

	updated, err := s.repo.FindSlot(ctx, slotID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return updated, nil
}

// Confirmation is best-effort: the booking stands even if the email
// cannot be queued.
func (s *service) sendConfirmation(ctx context.Context, memberID int, slot *Slot) {
	member, err := s.repo.UserContact(ctx, memberID)
	if err != nil {
		logger.Error("Failed to load member contact for booking email", "member_id", memberID, "error", err)
		return
	}

	trainer, err := s.repo.UserContact(ctx, slot.TrainerID)
	if err != nil {
		logger.Error("Failed to load trainer contact for booking email", "trainer_id", slot.TrainerID, "error", err)
		return
	}

	if err := s.mailer.SendBookingConfirmation(ctx, member.Email, member.Name, trainer.Name, slot.StartTime, slot.EndTime); err != nil {
		logger.Error("Failed to queue booking confirmation", "slot_id", slot.ID, "error", err)
	}
}

func (s *service) DeleteSlot(ctx context.Context, trainerID, slotID int) error {
	slot, err := s.repo.FindSlot(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("slot not found")
		}
		return apperr.Internal(err)
	}

	if slot.TrainerID != trainerID {
		return apperr.Forbidden("slot belongs to another trainer")
	}

	deleted, err := s.repo.TryDelete(ctx, slotID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !deleted {
		// Lost the race. Either someone booked the slot or it is
		// already gone.
		if _, err := s.repo.FindSlot(ctx, slotID); errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("slot not found")
		}
		return apperr.Conflict("cannot delete a booked slot")
	}

	return nil
}

func (s *service) ListTrainerSlots(ctx context.Context, trainerID int) ([]Slot, error) {
	slots, err := s.repo.ListTrainerSlots(ctx, trainerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return slots, nil
}

func (s *service) ListTrainerBookings(ctx context.Context, trainerID int) ([]Slot, error) {
	slots, err := s.repo.ListTrainerBookings(ctx, trainerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return slots, nil
}

func (s *service) ListMemberBookings(ctx context.Context, memberID int) ([]Slot, error) {
	slots, err := s.repo.ListMemberBookings(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return slots, nil
}

func (s *service) CreateSchedule(ctx context.Context, trainerID int, req CreateScheduleRequest) (*WorkoutSchedule, error) {
	gymID, err := s.gymOf(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	memberGym, err := s.repo.GymIDOfUser(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, apperr.Internal(err)
	}
	if memberGym == nil || *memberGym != gymID {
		return nil, apperr.Forbidden("member belongs to another gym")
	}

	ref, err := s.repo.FindPlanRef(ctx, req.WorkoutPlanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("workout plan not found")
		}
		return nil, apperr.Internal(err)
	}
	if ref.TrainerID != trainerID || ref.MemberID != req.MemberID {
		return nil, apperr.Forbidden("workout plan does not belong to this trainer and member")
	}

	at, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperr.Validation("scheduled_at must be RFC3339")
	}

	ws, err := s.repo.CreateSchedule(ctx, trainerID, req.MemberID, gymID, req.WorkoutPlanID, at)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return ws, nil
}

func (s *service) ListTrainerSchedules(ctx context.Context, trainerID int) ([]WorkoutSchedule, error) {
	schedules, err := s.repo.ListTrainerSchedules(ctx, trainerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return schedules, nil
}

func (s *service) ListMemberSchedules(ctx context.Context, memberID int) ([]WorkoutSchedule, error) {
	schedules, err := s.repo.ListMemberSchedules(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return schedules, nil
}

func (s *service) ownedSchedule(ctx context.Context, trainerID, scheduleID int) (*WorkoutSchedule, error) {
	ws, err := s.repo.FindSchedule(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("schedule not found")
		}
		return nil, apperr.Internal(err)
	}

	if ws.TrainerID != trainerID {
		return nil, apperr.Forbidden("schedule belongs to another trainer")
	}

	return ws, nil
}

func (s *service) UpdateSchedule(ctx context.Context, trainerID, scheduleID int, req UpdateScheduleRequest) (*WorkoutSchedule, error) {
	ws, err := s.ownedSchedule(ctx, trainerID, scheduleID)
	if err != nil {
		return nil, err
	}

	at, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, apperr.Validation("scheduled_at must be RFC3339")
	}

	if err := s.repo.UpdateScheduleTime(ctx, ws.ID, at); err != nil {
		return nil, apperr.Internal(err)
	}

	ws.ScheduledAt = at

	return ws, nil
}

func (s *service) DeleteSchedule(ctx context.Context, trainerID, scheduleID int) error {
	ws, err := s.ownedSchedule(ctx, trainerID, scheduleID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteSchedule(ctx, ws.ID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
