package email

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendQueuesJob(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewWithClient("from@gymdesk.app", "Gymdesk", "localhost", "1025", "", "", client)

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	err := svc.Send(context.Background(), "member@x.test", "Alex", "Hello", "Body")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSendJoinAcceptedBody(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewWithClient("from@gymdesk.app", "Gymdesk", "localhost", "1025", "", "", client)

	mock.Regexp().ExpectLPush(queueKey, `.*Welcome to Iron Temple.*`).SetVal(1)

	end := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	err := svc.SendJoinAccepted(context.Background(), "member@x.test", "Alex", "Iron Temple", &end)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewWithClient("from@gymdesk.app", "Gymdesk", "localhost", "1025", "", "", client)

	mock.ExpectLLen(queueKey).SetVal(4)
	assert.Equal(t, int64(4), svc.QueueLength(context.Background()))
}
