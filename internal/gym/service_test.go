package gym

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gymdesk/internal/apperr"
	"gymdesk/internal/eventlog"
	"gymdesk/internal/role"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListGyms(ctx context.Context) ([]Gym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *mockRepository) FindByOwner(ctx context.Context, ownerID int) (*Gym, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *mockRepository) Members(ctx context.Context, gymID int) ([]Person, error) {
	args := m.Called(ctx, gymID)
	return args.Get(0).([]Person), args.Error(1)
}

func (m *mockRepository) Trainers(ctx context.Context, gymID int) ([]Person, error) {
	args := m.Called(ctx, gymID)
	return args.Get(0).([]Person), args.Error(1)
}

func (m *mockRepository) UpdateProfile(ctx context.Context, gymID int, name, address, ownerName string, plans MembershipPlans) error {
	args := m.Called(ctx, gymID, name, address, ownerName, plans)
	return args.Error(0)
}

func (m *mockRepository) AddPhoto(ctx context.Context, gymID int, url string) error {
	args := m.Called(ctx, gymID, url)
	return args.Error(0)
}

func (m *mockRepository) RemovePhoto(ctx context.Context, gymID int, url string) error {
	args := m.Called(ctx, gymID, url)
	return args.Error(0)
}

func (m *mockRepository) DeleteGym(ctx context.Context, gymID int) error {
	args := m.Called(ctx, gymID)
	return args.Error(0)
}

func (m *mockRepository) GymIDOfUser(ctx context.Context, userID int) (*int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

func (m *mockRepository) PendingRequestExists(ctx context.Context, userID int) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CreateJoinRequest(ctx context.Context, userID int, r role.Role, gymID int, duration *string) (*JoinRequest, error) {
	args := m.Called(ctx, userID, r, gymID, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*JoinRequest), args.Error(1)
}

func (m *mockRepository) FindJoinRequest(ctx context.Context, id int) (*JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*JoinRequest), args.Error(1)
}

func (m *mockRepository) ListPendingRequests(ctx context.Context, gymID int, onlyRole *role.Role) ([]JoinRequest, error) {
	args := m.Called(ctx, gymID, onlyRole)
	return args.Get(0).([]JoinRequest), args.Error(1)
}

func (m *mockRepository) AcceptRequest(ctx context.Context, req *JoinRequest, start, end *time.Time) error {
	args := m.Called(ctx, req, start, end)
	return args.Error(0)
}

func (m *mockRepository) DenyRequest(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendJoinAccepted(ctx context.Context, to, name, gymName string, membershipEnd *time.Time) error {
	args := m.Called(ctx, to, name, gymName, membershipEnd)
	return args.Error(0)
}

type mockMedia struct {
	mock.Mock
}

func (m *mockMedia) Upload(ctx context.Context, folder, filename string, data []byte) (string, error) {
	args := m.Called(ctx, folder, filename, data)
	return args.String(0), args.Error(1)
}

func (m *mockMedia) DeleteByURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) Record(ctx context.Context, event, page string, actorID int, actorRole role.Role, details string) {
	m.Called(ctx, event, page, actorID, actorRole, details)
}

func (m *mockEvents) Analytics(ctx context.Context) (*eventlog.AnalyticsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventlog.AnalyticsResponse), args.Error(1)
}

func setupService(t *testing.T) (*service, *mockRepository, *mockMailer, *mockMedia, *mockEvents) {
	t.Helper()
	repo := new(mockRepository)
	mailer := new(mockMailer)
	media := new(mockMedia)
	events := new(mockEvents)
	svc := NewService(repo, mailer, media, events).(*service)
	return svc, repo, mailer, media, events
}

func TestJoinRequiresDurationForMembers(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	repo.On("FindByID", ctx, 5).Return(&Gym{ID: 5, Name: "Iron Temple"}, nil)
	repo.On("GymIDOfUser", ctx, 1).Return(nil, nil)
	repo.On("PendingRequestExists", ctx, 1).Return(false, nil)

	_, err := svc.Join(ctx, 1, role.Member, JoinGymRequest{GymID: 5})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Join(ctx, 1, role.Member, JoinGymRequest{GymID: 5, Duration: "2 weeks"})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestJoinConflictWhenAlreadyInGym(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	current := 3
	repo.On("FindByID", ctx, 5).Return(&Gym{ID: 5}, nil)
	repo.On("GymIDOfUser", ctx, 1).Return(&current, nil)

	_, err := svc.Join(ctx, 1, role.Member, JoinGymRequest{GymID: 5, Duration: "1 month"})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestJoinConflictWhenPendingRequestExists(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	repo.On("FindByID", ctx, 5).Return(&Gym{ID: 5}, nil)
	repo.On("GymIDOfUser", ctx, 1).Return(nil, nil)
	repo.On("PendingRequestExists", ctx, 1).Return(true, nil)

	_, err := svc.Join(ctx, 1, role.Trainer, JoinGymRequest{GymID: 5})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestJoinUnknownGym(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	repo.On("FindByID", ctx, 99).Return(nil, sql.ErrNoRows)

	_, err := svc.Join(ctx, 1, role.Member, JoinGymRequest{GymID: 99, Duration: "1 month"})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestJoinCreatesRequest(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	duration := "1 month"
	repo.On("FindByID", ctx, 5).Return(&Gym{ID: 5}, nil)
	repo.On("GymIDOfUser", ctx, 1).Return(nil, nil)
	repo.On("PendingRequestExists", ctx, 1).Return(false, nil)
	repo.On("CreateJoinRequest", ctx, 1, role.Member, 5, &duration).
		Return(&JoinRequest{ID: 7, UserID: 1, UserRole: role.Member, GymID: 5, Status: RequestPending}, nil)

	created, err := svc.Join(ctx, 1, role.Member, JoinGymRequest{GymID: 5, Duration: "1 month"})
	require.NoError(t, err)
	require.Equal(t, 7, created.ID)
	repo.AssertExpectations(t)
}

func TestAcceptMemberSetsClampedMembershipWindow(t *testing.T) {
	svc, repo, mailer, _, events := setupService(t)
	ctx := context.Background()

	// Fixed clock: Jan 31, 2024.
	start := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }
	wantEnd := time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)

	duration := "1 month"
	req := &JoinRequest{
		ID: 7, UserID: 2, UserRole: role.Member, GymID: 5,
		Status: RequestPending, MembershipDuration: &duration,
		UserName: "Alex", UserEmail: "alex@x.test",
	}

	repo.On("FindByOwner", ctx, 10).Return(&Gym{ID: 5, Name: "Iron Temple"}, nil)
	repo.On("FindJoinRequest", ctx, 7).Return(req, nil)
	repo.On("AcceptRequest", ctx, req, &start, &wantEnd).Return(nil)
	repo.On("FindByID", ctx, 5).Return(&Gym{ID: 5, Name: "Iron Temple"}, nil)
	mailer.On("SendJoinAccepted", ctx, "alex@x.test", "Alex", "Iron Temple", &wantEnd).Return(nil)
	events.On("Record", ctx, "Join Accepted", "N/A", 10, role.Gym, mock.AnythingOfType("string")).Return()

	err := svc.Accept(ctx, 10, role.Gym, 7)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestAcceptForbiddenForOtherGym(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	duration := "1 month"
	req := &JoinRequest{ID: 7, UserID: 2, UserRole: role.Member, GymID: 6, Status: RequestPending, MembershipDuration: &duration}

	repo.On("FindByOwner", ctx, 10).Return(&Gym{ID: 5}, nil)
	repo.On("FindJoinRequest", ctx, 7).Return(req, nil)

	err := svc.Accept(ctx, 10, role.Gym, 7)
	require.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestTrainerCannotActOnTrainerRequests(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	gymID := 5
	req := &JoinRequest{ID: 7, UserID: 2, UserRole: role.Trainer, GymID: 5, Status: RequestPending}

	repo.On("GymIDOfUser", ctx, 3).Return(&gymID, nil)
	repo.On("FindJoinRequest", ctx, 7).Return(req, nil)

	err := svc.Accept(ctx, 3, role.Trainer, 7)
	require.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestAcceptConflictWhenAlreadyProcessed(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	req := &JoinRequest{ID: 7, UserID: 2, UserRole: role.Trainer, GymID: 5, Status: RequestAccepted}

	repo.On("FindByOwner", ctx, 10).Return(&Gym{ID: 5}, nil)
	repo.On("FindJoinRequest", ctx, 7).Return(req, nil)

	err := svc.Accept(ctx, 10, role.Gym, 7)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestListRequestsTrainerFiltersMembers(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	gymID := 5
	member := role.Member
	repo.On("GymIDOfUser", ctx, 3).Return(&gymID, nil)
	repo.On("ListPendingRequests", ctx, 5, &member).Return([]JoinRequest{}, nil)

	_, err := svc.ListRequests(ctx, 3, role.Trainer)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateRejectsBadPlanDuration(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	repo.On("FindByOwner", ctx, 10).Return(&Gym{ID: 5, OwnerName: "Owner"}, nil)

	_, err := svc.Update(ctx, 10, UpdateGymRequest{
		Name: "Iron Temple", Address: "1 Main St",
		MembershipPlans: MembershipPlans{{Name: "Odd", Duration: "2 weeks", Price: 10}},
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAddPhotoUploadsThenPersists(t *testing.T) {
	svc, repo, _, media, _ := setupService(t)
	ctx := context.Background()

	data := []byte{0xFF, 0xD8}
	repo.On("FindByOwner", ctx, 10).Return(&Gym{ID: 5}, nil)
	media.On("Upload", ctx, "gym-photos", "front.jpg", data).Return("https://media/x/front.jpg", nil)
	repo.On("AddPhoto", ctx, 5, "https://media/x/front.jpg").Return(nil)
	repo.On("FindByID", ctx, 5).Return(&Gym{ID: 5, Photos: []string{"https://media/x/front.jpg"}}, nil)

	g, err := svc.AddPhoto(ctx, 10, "front.jpg", data)
	require.NoError(t, err)
	require.Len(t, g.Photos, 1)
	media.AssertExpectations(t)
}

func TestDeletePhotoUnknownURL(t *testing.T) {
	svc, repo, _, _, _ := setupService(t)
	ctx := context.Background()

	repo.On("FindByOwner", ctx, 10).Return(&Gym{ID: 5, Photos: []string{"https://media/x/a.jpg"}}, nil)

	err := svc.DeletePhoto(ctx, 10, "https://media/x/other.jpg")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteGymClearsAndLogs(t *testing.T) {
	svc, repo, _, _, events := setupService(t)
	ctx := context.Background()

	repo.On("FindByID", ctx, 5).Return(&Gym{ID: 5, Name: "Iron Temple"}, nil)
	repo.On("DeleteGym", ctx, 5).Return(nil)
	events.On("Record", ctx, "Gym Deleted", "N/A", 1, role.Admin, "Iron Temple").Return()

	err := svc.DeleteGym(ctx, 1, 5)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}
