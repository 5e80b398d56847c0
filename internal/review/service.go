package review

import (
	"context"
	"database/sql"
	"errors"

	"gymdesk/internal/apperr"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Service interface {
	Submit(ctx context.Context, memberID int, req SubmitReviewRequest) (*Review, error)
	ListOwnGym(ctx context.Context, memberID int) ([]Review, error)
	ListAll(ctx context.Context) ([]Review, error)
	Delete(ctx context.Context, reviewID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Submit(ctx context.Context, memberID int, req SubmitReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	gymID, err := s.repo.GymIDOfUser(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if gymID == nil {
		return nil, apperr.Forbidden("not a member of any gym")
	}

	exists, err := s.repo.Exists(ctx, *gymID, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, apperr.Conflict("you have already reviewed this gym")
	}

	rv, err := s.repo.Create(ctx, *gymID, memberID, req.Rating, req.Comment)
	if err != nil {
		// The unique index backs the pre-check against races.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, apperr.Conflict("you have already reviewed this gym")
		}
		return nil, apperr.Internal(err)
	}

	return rv, nil
}

func (s *service) ListOwnGym(ctx context.Context, memberID int) ([]Review, error) {
	gymID, err := s.repo.GymIDOfUser(ctx, memberID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if gymID == nil {
		return nil, apperr.Forbidden("not a member of any gym")
	}

	reviews, err := s.repo.ListForGym(ctx, *gymID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return reviews, nil
}

func (s *service) ListAll(ctx context.Context) ([]Review, error) {
	reviews, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return reviews, nil
}

func (s *service) Delete(ctx context.Context, reviewID int) error {
	if _, err := s.repo.Find(ctx, reviewID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("review not found")
		}
		return apperr.Internal(err)
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
