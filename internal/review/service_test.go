package review

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/apperr"

	"github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GymIDOfUser(ctx context.Context, userID int) (*int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *mockRepository) Exists(ctx context.Context, gymID, memberID int) (bool, error) {
	args := m.Called(ctx, gymID, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, gymID, memberID, rating int, comment string) (*Review, error) {
	args := m.Called(ctx, gymID, memberID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *mockRepository) ListForGym(ctx context.Context, gymID int) ([]Review, error) {
	args := m.Called(ctx, gymID)
	return args.Get(0).([]Review), args.Error(1)
}

func (m *mockRepository) ListAll(ctx context.Context) ([]Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Review), args.Error(1)
}

func (m *mockRepository) Find(ctx context.Context, id int) (*Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSubmitSecondReviewConflicts(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	gymID := 5
	repo.On("GymIDOfUser", ctx, 1).Return(&gymID, nil)
	repo.On("Exists", ctx, 5, 1).Return(true, nil)

	_, err := svc.Submit(ctx, 1, SubmitReviewRequest{Rating: 4, Comment: "solid"})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSubmitRequiresMembership(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GymIDOfUser", ctx, 1).Return(nil, nil)

	_, err := svc.Submit(ctx, 1, SubmitReviewRequest{Rating: 4, Comment: "solid"})
	require.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestSubmitRatingBounds(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	_, err := svc.Submit(context.Background(), 1, SubmitReviewRequest{Rating: 0, Comment: "x"})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Submit(context.Background(), 1, SubmitReviewRequest{Rating: 6, Comment: "x"})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSubmitUniqueViolationConflicts(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	gymID := 5
	repo.On("GymIDOfUser", ctx, 1).Return(&gymID, nil)
	repo.On("Exists", ctx, 5, 1).Return(false, nil)
	repo.On("Create", ctx, 5, 1, 4, "solid").
		Return(nil, &pq.Error{Code: "23505", Constraint: "gym_reviews_gym_id_member_id_key"})

	_, err := svc.Submit(ctx, 1, SubmitReviewRequest{Rating: 4, Comment: "solid"})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSubmitCreateFailureIsInternal(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	gymID := 5
	repo.On("GymIDOfUser", ctx, 1).Return(&gymID, nil)
	repo.On("Exists", ctx, 5, 1).Return(false, nil)
	repo.On("Create", ctx, 5, 1, 4, "solid").Return(nil, errors.New("connection refused"))

	_, err := svc.Submit(ctx, 1, SubmitReviewRequest{Rating: 4, Comment: "solid"})
	require.True(t, apperr.IsKind(err, apperr.KindInternal))
}

func TestSubmitCreates(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	gymID := 5
	repo.On("GymIDOfUser", ctx, 1).Return(&gymID, nil)
	repo.On("Exists", ctx, 5, 1).Return(false, nil)
	repo.On("Create", ctx, 5, 1, 4, "solid").Return(&Review{ID: 2, Rating: 4}, nil)

	rv, err := svc.Submit(ctx, 1, SubmitReviewRequest{Rating: 4, Comment: "solid"})
	require.NoError(t, err)
	require.Equal(t, 2, rv.ID)
	repo.AssertExpectations(t)
}
