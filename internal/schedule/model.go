package schedule

import "time"

const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
)

// Slot is a trainer's bookable session window. Intervals are half-open:
// [StartTime, EndTime).
type Slot struct {
	ID        int       `db:"id" json:"id"`
	TrainerID int       `db:"trainer_id" json:"trainer_id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Status    string    `db:"status" json:"status"`
	BookedBy  *int      `db:"booked_by" json:"booked_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined display names, populated by list queries.
	TrainerName *string `db:"trainer_name" json:"trainer_name,omitempty"`
	MemberName  *string `db:"member_name" json:"member_name,omitempty"`
}

type PublishSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkoutSchedule struct {
	ID            int       `db:"id" json:"id"`
	TrainerID     int       `db:"trainer_id" json:"trainer_id"`
	MemberID      int       `db:"member_id" json:"member_id"`
	GymID         int       `db:"gym_id" json:"gym_id"`
	WorkoutPlanID int       `db:"workout_plan_id" json:"workout_plan_id"`
	ScheduledAt   time.Time `db:"scheduled_at" json:"scheduled_at"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	MemberName  *string `db:"member_name" json:"member_name,omitempty"`
	TrainerName *string `db:"trainer_name" json:"trainer_name,omitempty"`
	PlanTitle   *string `db:"plan_title" json:"plan_title,omitempty"`
}

type CreateScheduleRequest struct {
	MemberID      int    `json:"member_id" binding:"required"`
	WorkoutPlanID int    `json:"workout_plan_id" binding:"required"`
	ScheduledAt   string `json:"scheduled_at" binding:"required"`
}

type UpdateScheduleRequest struct {
	ScheduledAt string `json:"scheduled_at" binding:"required"`
}
