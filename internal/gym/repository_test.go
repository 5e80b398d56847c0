package gym

import (
	"context"
	"regexp"
	"testing"
	"time"

	"gymdesk/internal/role"

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

func gymRows(id int, name string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "name", "address", "owner_name", "owner_email",
		"membership_plans", "photos", "created_at",
	}).AddRow(id, nil, name, "1 Main St", "Owner", "owner@x.test", []byte("[]"), "{}", time.Now())
}

func TestFindByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM gyms WHERE id = $1")).
		WithArgs(5).
		WillReturnRows(gymRows(5, "Iron Temple"))

	g, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "Iron Temple", g.Name)
}

func TestPendingRequestExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM join_requests WHERE user_id = $1 AND status = 'pending')")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.PendingRequestExists(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestCreateJoinRequest(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	duration := "1 month"
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO join_requests (user_id, user_role, gym_id, membership_duration)")).
		WithArgs(1, "member", 5, &duration).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "user_role", "gym_id", "status", "membership_duration", "created_at",
		}).AddRow(7, 1, "member", 5, "pending", duration, time.Now()))

	req, err := repo.CreateJoinRequest(context.Background(), 1, role.Member, 5, &duration)
	require.NoError(t, err)
	require.Equal(t, 7, req.ID)
	require.Equal(t, RequestPending, req.Status)
}

func TestListPendingRequestsRoleFilter(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	member := role.Member
	mock.ExpectQuery(`AND jr\.user_role = \$2`).
		WithArgs(5, "member").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "user_role", "gym_id", "status", "membership_duration", "created_at",
			"user_name", "user_email",
		}).AddRow(7, 1, "member", 5, "pending", "1 month", time.Now(), "Alex", "alex@x.test"))

	reqs, err := repo.ListPendingRequests(context.Background(), 5, &member)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.Equal(t, "Alex", reqs[0].UserName)
}

func TestAcceptRequestTransaction(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	duration := "1 month"
	start := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)
	req := &JoinRequest{ID: 7, UserID: 2, UserRole: role.Member, GymID: 5, MembershipDuration: &duration}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE join_requests SET status = 'accepted' WHERE id = $1")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET gym_id = $1, membership_duration = $2, membership_start = $3, membership_end = $4")).
		WithArgs(5, &duration, &start, &end, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AcceptRequest(context.Background(), req, &start, &end)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGymClearsMembership(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET gym_id = NULL, membership_duration = NULL, membership_start = NULL, membership_end = NULL")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM gyms WHERE id = $1")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteGym(context.Background(), 5)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAndRemovePhoto(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("SET photos = array_append(photos, $1)")).
		WithArgs("https://media/x/a.jpg", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET photos = array_remove(photos, $1)")).
		WithArgs("https://media/x/a.jpg", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AddPhoto(context.Background(), 5, "https://media/x/a.jpg"))
	require.NoError(t, repo.RemovePhoto(context.Background(), 5, "https://media/x/a.jpg"))
}
