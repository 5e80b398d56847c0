package plan

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

const requestColumns = `pr.id, pr.member_id, pr.trainer_id, pr.gym_id, pr.request_type, pr.status, pr.created_at`

const workoutColumns = `id, trainer_id, member_id, gym_id, title, description, exercises, created_at, updated_at`

const dietColumns = `id, trainer_id, member_id, gym_id, title, description, meals, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GymIDOfUser(ctx context.Context, userID int) (*int, error) {
	var gymID *int
	err := r.db.GetContext(ctx, &gymID, `SELECT gym_id FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, err
	}

	return gymID, nil
}

func (r *repository) PendingRequestExists(ctx context.Context, memberID, trainerID int, requestType string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM plan_requests
			WHERE member_id = $1 AND trainer_id = $2 AND request_type = $3 AND status = 'pending'
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, memberID, trainerID, requestType)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) CreateRequest(ctx context.Context, memberID, trainerID, gymID int, requestType string) (*PlanRequest, error) {
	query := `
		INSERT INTO plan_requests (member_id, trainer_id, gym_id, request_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, member_id, trainer_id, gym_id, request_type, status, created_at`

	var req PlanRequest
	err := r.db.GetContext(ctx, &req, query, memberID, trainerID, gymID, requestType)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *repository) FindRequest(ctx context.Context, id int) (*PlanRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM plan_requests pr WHERE pr.id = $1`

	var req PlanRequest
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *repository) ListMemberRequests(ctx context.Context, memberID int) ([]PlanRequest, error) {
	query := `
		SELECT ` + requestColumns + `, t.name AS trainer_name
		FROM plan_requests pr
		JOIN users t ON t.id = pr.trainer_id
		WHERE pr.member_id = $1
		ORDER BY pr.created_at DESC`

	reqs := []PlanRequest{}
	err := r.db.SelectContext(ctx, &reqs, query, memberID)
	if err != nil {
		return nil, err
	}

	return reqs, nil
}

func (r *repository) ListTrainerRequests(ctx context.Context, trainerID int) ([]PlanRequest, error) {
	query := `
		SELECT ` + requestColumns + `, m.name AS member_name
		FROM plan_requests pr
		JOIN users m ON m.id = pr.member_id
		WHERE pr.trainer_id = $1
		ORDER BY pr.created_at DESC`

	reqs := []PlanRequest{}
	err := r.db.SelectContext(ctx, &reqs, query, trainerID)
	if err != nil {
		return nil, err
	}

	return reqs, nil
}

func (r *repository) SetRequestStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE plan_requests SET status = $1 WHERE id = $2`, status, id)
	return err
}

// ErrRequestNotApproved reports that the referenced plan request was
// not in approved state when the plan insert ran.
var ErrRequestNotApproved = errors.New("plan request is not approved")

// fulfilRequest transitions the referenced approved request to
// fulfilled inside the caller's transaction, so the plan insert and the
// request transition commit or roll back together. The status
// condition settles the race against a concurrent fulfilment.
func fulfilRequest(ctx context.Context, tx *sqlx.Tx, requestID, memberID, trainerID int, requestType string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE plan_requests
		SET status = 'fulfilled'
		WHERE id = $1 AND member_id = $2 AND trainer_id = $3 AND request_type = $4 AND status = 'approved'`,
		requestID, memberID, trainerID, requestType)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRequestNotApproved
	}

	return nil
}

func (r *repository) CreateWorkoutPlan(ctx context.Context, trainerID, memberID, gymID int, title, description string, exercises Exercises, requestID *int) (*WorkoutPlan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var p WorkoutPlan
	err = tx.GetContext(ctx, &p, `
		INSERT INTO workout_plans (trainer_id, member_id, gym_id, title, description, exercises)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+workoutColumns, trainerID, memberID, gymID, title, description, exercises)
	if err != nil {
		return nil, err
	}

	if requestID != nil {
		if err := fulfilRequest(ctx, tx, *requestID, memberID, trainerID, TypeWorkout); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) FindWorkoutPlan(ctx context.Context, id int) (*WorkoutPlan, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_plans WHERE id = $1`

	var p WorkoutPlan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListTrainerWorkoutPlans(ctx context.Context, trainerID int) ([]WorkoutPlan, error) {
	query := `
		SELECT wp.id, wp.trainer_id, wp.member_id, wp.gym_id, wp.title, wp.description, wp.exercises,
			wp.created_at, wp.updated_at, m.name AS member_name
		FROM workout_plans wp
		JOIN users m ON m.id = wp.member_id
		WHERE wp.trainer_id = $1
		ORDER BY wp.updated_at DESC`

	plans := []WorkoutPlan{}
	err := r.db.SelectContext(ctx, &plans, query, trainerID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) ListMemberWorkoutPlans(ctx context.Context, memberID int) ([]WorkoutPlan, error) {
	query := `SELECT ` + workoutColumns + ` FROM workout_plans WHERE member_id = $1 ORDER BY updated_at DESC`

	plans := []WorkoutPlan{}
	err := r.db.SelectContext(ctx, &plans, query, memberID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) UpdateWorkoutPlan(ctx context.Context, id int, title, description string, exercises Exercises) error {
	query := `
		UPDATE workout_plans
		SET title = $1, description = $2, exercises = $3, updated_at = now()
		WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, title, description, exercises, id)
	return err
}

// Workout schedules referencing the plan go with it via FK cascade.
func (r *repository) DeleteWorkoutPlan(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM workout_plans WHERE id = $1`, id)
	return err
}

func (r *repository) CreateDietPlan(ctx context.Context, trainerID, memberID, gymID int, title, description string, meals Meals, requestID *int) (*DietPlan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var p DietPlan
	err = tx.GetContext(ctx, &p, `
		INSERT INTO diet_plans (trainer_id, member_id, gym_id, title, description, meals)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+dietColumns, trainerID, memberID, gymID, title, description, meals)
	if err != nil {
		return nil, err
	}

	if requestID != nil {
		if err := fulfilRequest(ctx, tx, *requestID, memberID, trainerID, TypeDiet); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) FindDietPlan(ctx context.Context, id int) (*DietPlan, error) {
	query := `SELECT ` + dietColumns + ` FROM diet_plans WHERE id = $1`

	var p DietPlan
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListTrainerDietPlans(ctx context.Context, trainerID int) ([]DietPlan, error) {
	query := `
		SELECT dp.id, dp.trainer_id, dp.member_id, dp.gym_id, dp.title, dp.description, dp.meals,
			dp.created_at, dp.updated_at, m.name AS member_name
		FROM diet_plans dp
		JOIN users m ON m.id = dp.member_id
		WHERE dp.trainer_id = $1
		ORDER BY dp.updated_at DESC`

	plans := []DietPlan{}
	err := r.db.SelectContext(ctx, &plans, query, trainerID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) ListMemberDietPlans(ctx context.Context, memberID int) ([]DietPlan, error) {
	query := `SELECT ` + dietColumns + ` FROM diet_plans WHERE member_id = $1 ORDER BY updated_at DESC`

	plans := []DietPlan{}
	err := r.db.SelectContext(ctx, &plans, query, memberID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *repository) UpdateDietPlan(ctx context.Context, id int, title, description string, meals Meals) error {
	query := `
		UPDATE diet_plans
		SET title = $1, description = $2, meals = $3, updated_at = now()
		WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, title, description, meals, id)
	return err
}

func (r *repository) DeleteDietPlan(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM diet_plans WHERE id = $1`, id)
	return err
}
