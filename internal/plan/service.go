package plan

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/apperr"
)

type Service interface {
	RequestPlan(ctx context.Context, memberID int, req RequestPlanRequest) (*PlanRequest, error)
	ListMemberRequests(ctx context.Context, memberID int) ([]PlanRequest, error)
	ListTrainerRequests(ctx context.Context, trainerID int) ([]PlanRequest, error)
	ActOnRequest(ctx context.Context, trainerID, requestID int, approve bool) error

	CreateWorkoutPlan(ctx context.Context, trainerID int, req CreateWorkoutPlanRequest) (*WorkoutPlan, error)
	ListTrainerWorkoutPlans(ctx context.Context, trainerID int) ([]WorkoutPlan, error)
	ListMemberWorkoutPlans(ctx context.Context, memberID int) ([]WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, trainerID, planID int, req UpdateWorkoutPlanRequest) (*WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, trainerID, planID int) error

	CreateDietPlan(ctx context.Context, trainerID int, req CreateDietPlanRequest) (*DietPlan, error)
	ListTrainerDietPlans(ctx context.Context, trainerID int) ([]DietPlan, error)
	ListMemberDietPlans(ctx context.Context, memberID int) ([]DietPlan, error)
	UpdateDietPlan(ctx context.Context, trainerID, planID int, req UpdateDietPlanRequest) (*DietPlan, error)
	DeleteDietPlan(ctx context.Context, trainerID, planID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) gymOf(ctx context.Context, userID int) (int, error) {
	gymID, err := s.repo.GymIDOfUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("user not found")
		}
		return 0, apperr.Internal(err)
	}
	if gymID == nil {
		return 0, apperr.Forbidden("not attached to a gym")
	}
	return *gymID, nil
}

// sameGym resolves both users' gyms and requires them to match.
func (s *service) sameGym(ctx context.Context, aID, bID int) (int, error) {
	aGym, err := s.gymOf(ctx, aID)
	if err != nil {
		return 0, err
	}

	bGym, err := s.gymOf(ctx, bID)
	if err != nil {
		return 0, err
	}

	if aGym != bGym {
		return 0, apperr.Forbidden("users belong to different gyms")
	}

	return aGym, nil
}

func (s *service) RequestPlan(ctx context.Context, memberID int, req RequestPlanRequest) (*PlanRequest, error) {
	gymID, err := s.sameGym(ctx, memberID, req.TrainerID)
	if err != nil {
		return nil, err
	}

	pending, err := s.repo.PendingRequestExists(ctx, memberID, req.TrainerID, req.RequestType)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if pending {
		return nil, apperr.Conflict("a pending %s plan request for this trainer already exists", req.RequestType)
	}

	created, err := s.repo.CreateRequest(ctx, memberID, req.TrainerID, gymID, req.RequestType)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return created, nil
}

func (s *service) ListMemberRequests(ctx context.Context, memberID int) ([]PlanRequest, error) {
	reqs, err := s.repo.ListMemberRequests(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return reqs, nil
}

func (s *service) ListTrainerRequests(ctx context.Context, trainerID int) ([]PlanRequest, error) {
	reqs, err := s.repo.ListTrainerRequests(ctx, trainerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return reqs, nil
}

func (s *service) ActOnRequest(ctx context.Context, trainerID, requestID int, approve bool) error {
	req, err := s.repo.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("plan request not found")
		}
		return apperr.Internal(err)
	}

	if req.TrainerID != trainerID {
		return apperr.Forbidden("plan request belongs to another trainer")
	}
	if req.Status != RequestPending {
		return apperr.Conflict("plan request already processed")
	}

	status := RequestDenied
	if approve {
		status = RequestApproved
	}

	if err := s.repo.SetRequestStatus(ctx, req.ID, status); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

// checkRequestReference validates that the referenced plan request is
// an approved request of this trainer for this member and type. The
// repository re-checks the approved status inside the transaction.
func (s *service) checkRequestReference(ctx context.Context, requestID, trainerID, memberID int, requestType string) error {
	req, err := s.repo.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("plan request not found")
		}
		return apperr.Internal(err)
	}

	if req.TrainerID != trainerID {
		return apperr.Forbidden("plan request belongs to another trainer")
	}
	if req.MemberID != memberID || req.RequestType != requestType {
		return apperr.Validation("plan request does not match this member and plan type")
	}
	if req.Status != RequestApproved {
		return apperr.Conflict("plan request is not approved")
	}

	return nil
}

func (s *service) CreateWorkoutPlan(ctx context.Context, trainerID int, req CreateWorkoutPlanRequest) (*WorkoutPlan, error) {
	gymID, err := s.sameGym(ctx, trainerID, req.MemberID)
	if err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		if err := s.checkRequestReference(ctx, *req.RequestID, trainerID, req.MemberID, TypeWorkout); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.CreateWorkoutPlan(ctx, trainerID, req.MemberID, gymID, req.Title, req.Description, req.Exercises, req.RequestID)
	if err != nil {
		if errors.Is(err, ErrRequestNotApproved) {
			return nil, apperr.Conflict("plan request is no longer approved")
		}
		return nil, apperr.Internal(err)
	}

	return p, nil
}

func (s *service) ListTrainerWorkoutPlans(ctx context.Context, trainerID int) ([]WorkoutPlan, error) {
	plans, err := s.repo.ListTrainerWorkoutPlans(ctx, trainerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return plans, nil
}

func (s *service) ListMemberWorkoutPlans(ctx context.Context, memberID int) ([]WorkoutPlan, error) {
	plans, err := s.repo.ListMemberWorkoutPlans(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return plans, nil
}

func (s *service) ownedWorkoutPlan(ctx context.Context, trainerID, planID int) (*WorkoutPlan, error) {
	p, err := s.repo.FindWorkoutPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("workout plan not found")
		}
		return nil, apperr.Internal(err)
	}

	if p.TrainerID != trainerID {
		return nil, apperr.Forbidden("workout plan belongs to another trainer")
	}

	return p, nil
}

func (s *service) UpdateWorkoutPlan(ctx context.Context, trainerID, planID int, req UpdateWorkoutPlanRequest) (*WorkoutPlan, error) {
	p, err := s.ownedWorkoutPlan(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWorkoutPlan(ctx, p.ID, req.Title, req.Description, req.Exercises); err != nil {
		return nil, apperr.Internal(err)
	}

	updated, err := s.repo.FindWorkoutPlan(ctx, p.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return updated, nil
}

func (s *service) DeleteWorkoutPlan(ctx context.Context, trainerID, planID int) error {
	p, err := s.ownedWorkoutPlan(ctx, trainerID, planID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteWorkoutPlan(ctx, p.ID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}

func (s *service) CreateDietPlan(ctx context.Context, trainerID int, req CreateDietPlanRequest) (*DietPlan, error) {
	gymID, err := s.sameGym(ctx, trainerID, req.MemberID)
	if err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		if err := s.checkRequestReference(ctx, *req.RequestID, trainerID, req.MemberID, TypeDiet); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.CreateDietPlan(ctx, trainerID, req.MemberID, gymID, req.Title, req.Description, req.Meals, req.RequestID)
	if err != nil {
		if errors.Is(err, ErrRequestNotApproved) {
			return nil, apperr.Conflict("plan request is no longer approved")
		}
		return nil, apperr.Internal(err)
	}

	return p, nil
}

func (s *service) ListTrainerDietPlans(ctx context.Context, trainerID int) ([]DietPlan, error) {
	plans, err := s.repo.ListTrainerDietPlans(ctx, trainerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return plans, nil
}

func (s *service) ListMemberDietPlans(ctx context.Context, memberID int) ([]DietPlan, error) {
	plans, err := s.repo.ListMemberDietPlans(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return plans, nil
}

func (s *service) ownedDietPlan(ctx context.Context, trainerID, planID int) (*DietPlan, error) {
	p, err := s.repo.FindDietPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("diet plan not found")
		}
		return nil, apperr.Internal(err)
	}

	if p.TrainerID != trainerID {
		return nil, apperr.Forbidden("diet plan belongs to another trainer")
	}

	return p, nil
}

func (s *service) UpdateDietPlan(ctx context.Context, trainerID, planID int, req UpdateDietPlanRequest) (*DietPlan, error) {
	p, err := s.ownedDietPlan(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDietPlan(ctx, p.ID, req.Title, req.Description, req.Meals); err != nil {
		return nil, apperr.Internal(err)
	}

	updated, err := s.repo.FindDietPlan(ctx, p.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return updated, nil
}

func (s *service) DeleteDietPlan(ctx context.Context, trainerID, planID int) error {
	p, err := s.ownedDietPlan(ctx, trainerID, planID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteDietPlan(ctx, p.ID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
