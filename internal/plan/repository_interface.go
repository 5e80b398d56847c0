package plan

import "context"

type Repository interface {
	GymIDOfUser(ctx context.Context, userID int) (*int, error)

	PendingRequestExists(ctx context.Context, memberID, trainerID int, requestType string) (bool, error)
	CreateRequest(ctx context.Context, memberID, trainerID, gymID int, requestType string) (*PlanRequest, error)
	FindRequest(ctx context.Context, id int) (*PlanRequest, error)
	ListMemberRequests(ctx context.Context, memberID int) ([]PlanRequest, error)
	ListTrainerRequests(ctx context.Context, trainerID int) ([]PlanRequest, error)
	SetRequestStatus(ctx context.Context, id int, status string) error

	// CreateWorkoutPlan inserts the plan and, when requestID is set,
	// transitions exactly that approved request to fulfilled in the
	// same transaction. Returns ErrRequestNotApproved when the
	// referenced request is no longer approved.
	CreateWorkoutPlan(ctx context.Context, trainerID, memberID, gymID int, title, description string, exercises Exercises, requestID *int) (*WorkoutPlan, error)
	FindWorkoutPlan(ctx context.Context, id int) (*WorkoutPlan, error)
	ListTrainerWorkoutPlans(ctx context.Context, trainerID int) ([]WorkoutPlan, error)
	ListMemberWorkoutPlans(ctx context.Context, memberID int) ([]WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, id int, title, description string, exercises Exercises) error
	DeleteWorkoutPlan(ctx context.Context, id int) error

	CreateDietPlan(ctx context.Context, trainerID, memberID, gymID int, title, description string, meals Meals, requestID *int) (*DietPlan, error)
	FindDietPlan(ctx context.Context, id int) (*DietPlan, error)
	ListTrainerDietPlans(ctx context.Context, trainerID int) ([]DietPlan, error)
	ListMemberDietPlans(ctx context.Context, memberID int) ([]DietPlan, error)
	UpdateDietPlan(ctx context.Context, id int, title, description string, meals Meals) error
	DeleteDietPlan(ctx context.Context, id int) error
}
