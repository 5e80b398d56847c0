package plan

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	TypeWorkout = "workout"
	TypeDiet    = "diet"
)

const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestDenied    = "denied"
	RequestFulfilled = "fulfilled"
)

type Exercise struct {
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   int    `json:"reps"`
	Rest   string `json:"rest,omitempty"`
	Notes  string `json:"notes,omitempty"`
	Weight string `json:"weight,omitempty"`
}

type Meal struct {
	Name     string  `json:"name"`
	Time     string  `json:"time,omitempty"`
	Calories float64 `json:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fats     float64 `json:"fats,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type Exercises []Exercise

func (e Exercises) Value() (driver.Value, error) {
	if e == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e)
}

func (e *Exercises) Scan(src interface{}) error {
	return scanJSON(src, e)
}

type Meals []Meal

func (m Meals) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

func (m *Meals) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return errors.New("unsupported type for jsonb column")
	}
}

type PlanRequest struct {
	ID          int       `db:"id" json:"id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	TrainerID   int       `db:"trainer_id" json:"trainer_id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	RequestType string    `db:"request_type" json:"request_type"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	MemberName  *string `db:"member_name" json:"member_name,omitempty"`
	TrainerName *string `db:"trainer_name" json:"trainer_name,omitempty"`
}

type WorkoutPlan struct {
	ID          int       `db:"id" json:"id"`
	TrainerID   int       `db:"trainer_id" json:"trainer_id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Exercises   Exercises `db:"exercises" json:"exercises"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	MemberName *string `db:"member_name" json:"member_name,omitempty"`
}

type DietPlan struct {
	ID          int       `db:"id" json:"id"`
	TrainerID   int       `db:"trainer_id" json:"trainer_id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Meals       Meals     `db:"meals" json:"meals"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	MemberName *string `db:"member_name" json:"member_name,omitempty"`
}

type RequestPlanRequest struct {
	TrainerID   int    `json:"trainer_id" binding:"required"`
	RequestType string `json:"request_type" binding:"required,oneof=workout diet"`
}

type CreateWorkoutPlanRequest struct {
	MemberID    int       `json:"member_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description,omitempty"`
	Exercises   Exercises `json:"exercises,omitempty"`
	// RequestID references the approved plan request this plan
	// fulfils. Omitted for plans created without a request.
	RequestID *int `json:"request_id,omitempty"`
}

type CreateDietPlanRequest struct {
	MemberID    int    `json:"member_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Meals       Meals  `json:"meals,omitempty"`
	RequestID   *int   `json:"request_id,omitempty"`
}

type UpdateWorkoutPlanRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description,omitempty"`
	Exercises   Exercises `json:"exercises,omitempty"`
}

type UpdateDietPlanRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	Meals       Meals  `json:"meals,omitempty"`
}
