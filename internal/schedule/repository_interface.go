package schedule

import (
	"context"
	"time"
)

// PlanRef identifies who a workout plan belongs to.
type PlanRef struct {
	TrainerID int `db:"trainer_id"`
	MemberID  int `db:"member_id"`
	GymID     int `db:"gym_id"`
}

type Contact struct {
	Name  string `db:"name"`
	Email string `db:"email"`
}

type Repository interface {
	CreateSlot(ctx context.Context, trainerID, gymID int, start, end time.Time) (*Slot, error)
	HasOverlap(ctx context.Context, trainerID int, start, end time.Time) (bool, error)
	FindSlot(ctx context.Context, id int) (*Slot, error)
	ListAvailable(ctx context.Context, gymID int, now time.Time) ([]Slot, error)
	ListTrainerSlots(ctx context.Context, trainerID int) ([]Slot, error)
	ListTrainerBookings(ctx context.Context, trainerID int) ([]Slot, error)
	ListMemberBookings(ctx context.Context, memberID int) ([]Slot, error)

	// TryBook flips an available slot to booked. Returns false when the
	// slot was no longer available.
	TryBook(ctx context.Context, slotID, memberID int) (bool, error)
	// TryDelete removes a slot only while it is still available.
	TryDelete(ctx context.Context, slotID int) (bool, error)

	GymIDOfUser(ctx context.Context, userID int) (*int, error)
	UserContact(ctx context.Context, userID int) (*Contact, error)
	FindPlanRef(ctx context.Context, planID int) (*PlanRef, error)

	CreateSchedule(ctx context.Context, trainerID, memberID, gymID, planID int, at time.Time) (*WorkoutSchedule, error)
	FindSchedule(ctx context.Context, id int) (*WorkoutSchedule, error)
	ListTrainerSchedules(ctx context.Context, trainerID int) ([]WorkoutSchedule, error)
	ListMemberSchedules(ctx context.Context, memberID int) ([]WorkoutSchedule, error)
	UpdateScheduleTime(ctx context.Context, id int, at time.Time) error
	DeleteSchedule(ctx context.Context, id int) error
}
