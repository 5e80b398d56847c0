package plan

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func TestPendingRequestExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE member_id = $1 AND trainer_id = $2 AND request_type = $3 AND status = 'pending'")).
		WithArgs(1, 3, "workout").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.PendingRequestExists(context.Background(), 1, 3, TypeWorkout)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestCreateWorkoutPlanMarksRequestFulfilled(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	exercises := Exercises{{Name: "Squat", Sets: 5, Reps: 5}}
	requestID := 11

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO workout_plans (trainer_id, member_id, gym_id, title, description, exercises)")).
		WithArgs(3, 1, 5, "Strength", "base block", exercises).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trainer_id", "member_id", "gym_id", "title", "description", "exercises", "created_at", "updated_at",
		}).AddRow(9, 3, 1, 5, "Strength", "base block", []byte(`[{"name":"Squat","sets":5,"reps":5}]`), time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'fulfilled'")).
		WithArgs(11, 1, 3, "workout").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := repo.CreateWorkoutPlan(context.Background(), 3, 1, 5, "Strength", "base block", exercises, &requestID)
	require.NoError(t, err)
	require.Equal(t, 9, p.ID)
	require.Len(t, p.Exercises, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWorkoutPlanWithoutReferenceSkipsRequestUpdate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO workout_plans (trainer_id, member_id, gym_id, title, description, exercises)")).
		WithArgs(3, 1, 5, "Strength", "", Exercises(nil)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trainer_id", "member_id", "gym_id", "title", "description", "exercises", "created_at", "updated_at",
		}).AddRow(9, 3, 1, 5, "Strength", "", []byte(`[]`), time.Now(), time.Now()))
	mock.ExpectCommit()

	p, err := repo.CreateWorkoutPlan(context.Background(), 3, 1, 5, "Strength", "", nil, nil)
	require.NoError(t, err)
	require.Equal(t, 9, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWorkoutPlanRollsBackWhenRequestNoLongerApproved(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	requestID := 11

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO workout_plans (trainer_id, member_id, gym_id, title, description, exercises)")).
		WithArgs(3, 1, 5, "Strength", "", Exercises(nil)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trainer_id", "member_id", "gym_id", "title", "description", "exercises", "created_at", "updated_at",
		}).AddRow(9, 3, 1, 5, "Strength", "", []byte(`[]`), time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'fulfilled'")).
		WithArgs(11, 1, 3, "workout").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.CreateWorkoutPlan(context.Background(), 3, 1, 5, "Strength", "", nil, &requestID)
	require.ErrorIs(t, err, ErrRequestNotApproved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDietPlanRollsBackOnFulfilFailure(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	meals := Meals{{Name: "Breakfast", Calories: 600}}
	requestID := 11

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO diet_plans")).
		WithArgs(3, 1, 5, "Cut", "", meals).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trainer_id", "member_id", "gym_id", "title", "description", "meals", "created_at", "updated_at",
		}).AddRow(9, 3, 1, 5, "Cut", "", []byte(`[]`), time.Now(), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'fulfilled'")).
		WithArgs(11, 1, 3, "diet").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	_, err := repo.CreateDietPlan(context.Background(), 3, 1, 5, "Cut", "", meals, &requestID)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetRequestStatus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE plan_requests SET status = $1 WHERE id = $2")).
		WithArgs("approved", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRequestStatus(context.Background(), 7, RequestApproved))
}
