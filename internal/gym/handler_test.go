package gym

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymdesk/internal/apperr"
	"gymdesk/internal/auth"
	"gymdesk/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListGyms(ctx context.Context) ([]Gym, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *mockService) GetGym(ctx context.Context, id int) (*GymDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GymDetail), args.Error(1)
}

func (m *mockService) Join(ctx context.Context, userID int, rl role.Role, req JoinGymRequest) (*JoinRequest, error) {
	args := m.Called(ctx, userID, rl, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*JoinRequest), args.Error(1)
}

func (m *mockService) ListRequests(ctx context.Context, actorID int, actorRole role.Role) ([]JoinRequest, error) {
	args := m.Called(ctx, actorID, actorRole)
	return args.Get(0).([]JoinRequest), args.Error(1)
}

func (m *mockService) Accept(ctx context.Context, actorID int, actorRole role.Role, requestID int) error {
	args := m.Called(ctx, actorID, actorRole, requestID)
	return args.Error(0)
}

func (m *mockService) Deny(ctx context.Context, actorID int, actorRole role.Role, requestID int) error {
	args := m.Called(ctx, actorID, actorRole, requestID)
	return args.Error(0)
}

func (m *mockService) Update(ctx context.Context, ownerID int, req UpdateGymRequest) (*Gym, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *mockService) AddPhoto(ctx context.Context, ownerID int, filename string, data []byte) (*Gym, error) {
	args := m.Called(ctx, ownerID, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *mockService) DeletePhoto(ctx context.Context, ownerID int, url string) error {
	args := m.Called(ctx, ownerID, url)
	return args.Error(0)
}

func (m *mockService) DeleteGym(ctx context.Context, actorID, gymID int) error {
	args := m.Called(ctx, actorID, gymID)
	return args.Error(0)
}

func performJoin(t *testing.T, svc Service, body JoinGymRequest, ident *auth.Identity) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/member/join-gym", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	if ident != nil {
		auth.SetIdentity(c, *ident)
	}

	h.Join(c)
	return w
}

func TestJoinHandlerCreated(t *testing.T) {
	svc := new(mockService)
	svc.On("Join", mock.Anything, 1, role.Member, JoinGymRequest{GymID: 5, Duration: "1 month"}).
		Return(&JoinRequest{ID: 7, GymID: 5, Status: RequestPending}, nil)

	w := performJoin(t, svc, JoinGymRequest{GymID: 5, Duration: "1 month"},
		&auth.Identity{ID: 1, Role: role.Member})

	require.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestJoinHandlerConflictMapped(t *testing.T) {
	svc := new(mockService)
	svc.On("Join", mock.Anything, 1, role.Member, mock.Anything).
		Return(nil, apperr.Conflict("already a member of a gym"))

	w := performJoin(t, svc, JoinGymRequest{GymID: 5, Duration: "1 month"},
		&auth.Identity{ID: 1, Role: role.Member})

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "already a member")
}

func TestGetGymNotFoundMapped(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockService)
	svc.On("GetGym", mock.Anything, 99).Return(nil, apperr.NotFound("gym not found"))

	h := NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/gym/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	h.GetGym(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetGymInternalSuppressed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := new(mockService)
	svc.On("GetGym", mock.Anything, 5).Return(nil, apperr.Internal(context.DeadlineExceeded))

	h := NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/gym/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	h.GetGym(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "deadline")
}
