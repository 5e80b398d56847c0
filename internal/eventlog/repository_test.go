package eventlog

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

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestInsert(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO event_logs (event, page, actor_id, actor_role, details) VALUES ($1, $2, $3, $4, $5)")).
		WithArgs("Login", "N/A", 1, "member", "Member logged in").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), "Login", "N/A", 1, "member", "Member logged in")
	require.NoError(t, err)
}

func TestEvictOldest(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	// 23 rows present: 3 should go.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM event_logs WHERE id IN ( SELECT id FROM event_logs ORDER BY created_at DESC, id DESC OFFSET $1 )")).
		WithArgs(retainLimit).
		WillReturnResult(sqlmock.NewResult(0, 3))

	evicted, err := repo.EvictOldest(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, evicted)
}

func TestEvictOldestNothingToDo(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM event_logs")).
		WithArgs(retainLimit).
		WillReturnResult(sqlmock.NewResult(0, 0))

	evicted, err := repo.EvictOldest(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, evicted)
}

func TestListLatest(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "event", "page", "actor_id", "actor_role", "details", "created_at"}).
		AddRow(5, "Login", "N/A", 2, "trainer", "Trainer logged in", now).
		AddRow(4, "Page View", "/gyms", 3, "member", "", now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, event, page, actor_id, actor_role, details, created_at FROM event_logs ORDER BY created_at DESC, id DESC LIMIT $1")).
		WithArgs(20).
		WillReturnRows(rows)

	events, err := repo.ListLatest(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Login", events[0].Event)
}

func TestPageViews(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"page", "count"}).
		AddRow("/gyms", 12).
		AddRow("/member-dashboard", 5)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE event = 'Page View' GROUP BY page ORDER BY count DESC")).
		WillReturnRows(rows)

	counts, err := repo.PageViews(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	require.Equal(t, "/gyms", counts[0].Page)
	require.Equal(t, 12, counts[0].Count)
}

func TestUserDistribution(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"actor_role", "count"}).
		AddRow("member", 8).
		AddRow("trainer", 3)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE event IN ('Login', 'Register') GROUP BY actor_role")).
		WillReturnRows(rows)

	counts, err := repo.UserDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
}
