package eventlog

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Insert(ctx context.Context, event, page string, actorID int, actorRole, details string) error {
	return m.Called(ctx, event, page, actorID, actorRole, details).Error(0)
}

func (m *MockRepo) EvictOldest(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepo) ListLatest(ctx context.Context, limit int) ([]Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Event), args.Error(1)
}

func (m *MockRepo) PageViews(ctx context.Context) ([]PageViewCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PageViewCount), args.Error(1)
}

func (m *MockRepo) UserDistribution(ctx context.Context) ([]RoleCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RoleCount), args.Error(1)
}

func TestRecordEvictsAfterInsert(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Insert", mock.Anything, "Login", "N/A", 1, "member", "Member logged in").Return(nil)
	repo.On("EvictOldest", mock.Anything).Return(2, nil)

	svc := NewService(repo)
	svc.Record(context.Background(), "Login", "N/A", 1, role.Member, "Member logged in")

	repo.AssertExpectations(t)
}

func TestRecordSwallowsEvictionFailure(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Insert", mock.Anything, "Register", "N/A", 2, "trainer", "").Return(nil)
	repo.On("EvictOldest", mock.Anything).Return(0, errors.New("deadlock"))

	svc := NewService(repo)
	// Must not panic or surface the eviction error.
	svc.Record(context.Background(), "Register", "N/A", 2, role.Trainer, "")

	repo.AssertExpectations(t)
}

func TestRecordSkipsEvictionWhenInsertFails(t *testing.T) {
	repo := new(MockRepo)
	repo.On("Insert", mock.Anything, "Login", "N/A", 1, "member", "").Return(errors.New("down"))

	svc := NewService(repo)
	svc.Record(context.Background(), "Login", "N/A", 1, role.Member, "")

	repo.AssertNotCalled(t, "EvictOldest", mock.Anything)
}

func TestAnalytics(t *testing.T) {
	repo := new(MockRepo)
	repo.On("PageViews", mock.Anything).Return([]PageViewCount{{Page: "/gyms", Count: 3}}, nil)
	repo.On("UserDistribution", mock.Anything).Return([]RoleCount{{Role: role.Member, Count: 5}}, nil)
	repo.On("ListLatest", mock.Anything, 20).Return([]Event{{ID: 1, Event: "Login"}}, nil)

	svc := NewService(repo)
	data, err := svc.Analytics(context.Background())

	assert.NoError(t, err)
	assert.Len(t, data.PageViews, 1)
	assert.Len(t, data.UserDistribution, 1)
	assert.Len(t, data.Events, 1)
}
