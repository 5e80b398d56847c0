package schedule

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

const slotColumns = `id, trainer_id, gym_id, start_time, end_time, status, booked_by, created_at`

const scheduleColumns = `ws.id, ws.trainer_id, ws.member_id, ws.gym_id, ws.workout_plan_id, ws.scheduled_at, ws.created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSlot(ctx context.Context, trainerID, gymID int, start, end time.Time) (*Slot, error) {
	query := `
		INSERT INTO trainer_slots (trainer_id, gym_id, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + slotColumns

	var s Slot
	err := r.db.GetContext(ctx, &s, query, trainerID, gymID, start, end)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// HasOverlap reports whether [start, end) intersects any existing slot
// of the trainer. Half-open: back-to-back slots do not overlap.
func (r *repository) HasOverlap(ctx context.Context, trainerID int, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM trainer_slots
			WHERE trainer_id = $1 AND start_time < $3 AND $2 < end_time
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, trainerID, start, end)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) FindSlot(ctx context.Context, id int) (*Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM trainer_slots WHERE id = $1`

	var s Slot
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) ListAvailable(ctx context.Context, gymID int, now time.Time) ([]Slot, error) {
	query := `
		SELECT ts.id, ts.trainer_id, ts.gym_id, ts.start_time, ts.end_time, ts.status, ts.booked_by, ts.created_at,
			u.name AS trainer_name
		FROM trainer_slots ts
		JOIN users u ON u.id = ts.trainer_id
		WHERE ts.gym_id = $1 AND ts.status = 'available' AND ts.start_time >= $2
		ORDER BY ts.start_time ASC`

	slots := []Slot{}
	err := r.db.SelectContext(ctx, &slots, query, gymID, now)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListTrainerSlots(ctx context.Context, trainerID int) ([]Slot, error) {
	query := `
		SELECT ts.id, ts.trainer_id, ts.gym_id, ts.start_time, ts.end_time, ts.status, ts.booked_by, ts.created_at,
			m.name AS member_name
		FROM trainer_slots ts
		LEFT JOIN users m ON m.id = ts.booked_by
		WHERE ts.trainer_id = $1
		ORDER BY ts.start_time ASC`

	slots := []Slot{}
	err := r.db.SelectContext(ctx, &slots, query, trainerID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListTrainerBookings(ctx context.Context, trainerID int) ([]Slot, error) {
	query := `
		SELECT ts.id, ts.trainer_id, ts.gym_id, ts.start_time, ts.end_time, ts.status, ts.booked_by, ts.created_at,
			m.name AS member_name
		FROM trainer_slots ts
		JOIN users m ON m.id = ts.booked_by
		WHERE ts.trainer_id = $1 AND ts.status = 'booked'
		ORDER BY ts.start_time ASC`

	slots := []Slot{}
	err := r.db.SelectContext(ctx, &slots, query, trainerID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) ListMemberBookings(ctx context.Context, memberID int) ([]Slot, error) {
	query := `
		SELECT ts.id, ts.trainer_id, ts.gym_id, ts.start_time, ts.end_time, ts.status, ts.booked_by, ts.created_at,
			u.name AS trainer_name
		FROM trainer_slots ts
		JOIN users u ON u.id = ts.trainer_id
		WHERE ts.booked_by = $1 AND ts.status = 'booked'
		ORDER BY ts.start_time ASC`

	slots := []Slot{}
	err := r.db.SelectContext(ctx, &slots, query, memberID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

// TryBook is the contended transition: the status predicate makes the
// update a compare-and-swap, so exactly one concurrent booker wins.
func (r *repository) TryBook(ctx context.Context, slotID, memberID int) (bool, error) {
	query := `
		UPDATE trainer_slots
		SET status = 'booked', booked_by = $1
		WHERE id = $2 AND status = 'available'`

	res, err := r.db.ExecContext(ctx, query, memberID, slotID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (r *repository) TryDelete(ctx context.Context, slotID int) (bool, error) {
	query := `DELETE FROM trainer_slots WHERE id = $1 AND status = 'available'`

	res, err := r.db.ExecContext(ctx, query, slotID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (r *repository) GymIDOfUser(ctx context.Context, userID int) (*int, error) {
	var gymID *int
	err := r.db.GetContext(ctx, &gymID, `SELECT gym_id FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}

	return gymID, nil
}

func (r *repository) UserContact(ctx context.Context, userID int) (*Contact, error) {
	var c Contact
	err := r.db.GetContext(ctx, &c, `SELECT name, email FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) FindPlanRef(ctx context.Context, planID int) (*PlanRef, error) {
	var ref PlanRef
	err := r.db.GetContext(ctx, &ref, `SELECT trainer_id, member_id, gym_id FROM workout_plans WHERE id = $1`, planID)
	if err != nil {
		return nil, err
	}

	return &ref, nil
}

func (r *repository) CreateSchedule(ctx context.Context, trainerID, memberID, gymID, planID int, at time.Time) (*WorkoutSchedule, error) {
	query := `
		INSERT INTO workout_schedules (trainer_id, member_id, gym_id, workout_plan_id, scheduled_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, trainer_id, member_id, gym_id, workout_plan_id, scheduled_at, created_at`

	var ws WorkoutSchedule
	err := r.db.GetContext(ctx, &ws, query, trainerID, memberID, gymID, planID, at)
	if err != nil {
		return nil, err
	}

	return &ws, nil
}

func (r *repository) FindSchedule(ctx context.Context, id int) (*WorkoutSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM workout_schedules ws
		WHERE ws.id = $1`

	var ws WorkoutSchedule
	err := r.db.GetContext(ctx, &ws, query, id)
	if err != nil {
		return nil, err
	}

	return &ws, nil
}

func (r *repository) ListTrainerSchedules(ctx context.Context, trainerID int) ([]WorkoutSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `,
			m.name AS member_name, wp.title AS plan_title
		FROM workout_schedules ws
		JOIN users m ON m.id = ws.member_id
		JOIN workout_plans wp ON wp.id = ws.workout_plan_id
		WHERE ws.trainer_id = $1
		ORDER BY ws.scheduled_at ASC`

	schedules := []WorkoutSchedule{}
	err := r.db.SelectContext(ctx, &schedules, query, trainerID)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *repository) ListMemberSchedules(ctx context.Context, memberID int) ([]WorkoutSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `,
			t.name AS trainer_name, wp.title AS plan_title
		FROM workout_schedules ws
		JOIN users t ON t.id = ws.trainer_id
		JOIN workout_plans wp ON wp.id = ws.workout_plan_id
		WHERE ws.member_id = $1
		ORDER BY ws.scheduled_at ASC`

	schedules := []WorkoutSchedule{}
	err := r.db.SelectContext(ctx, &schedules, query, memberID)
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *repository) UpdateScheduleTime(ctx context.Context, id int, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE workout_schedules SET scheduled_at = $1 WHERE id = $2`, at, id)
	return err
}

func (r *repository) DeleteSchedule(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM workout_schedules WHERE id = $1`, id)
	return err
}
