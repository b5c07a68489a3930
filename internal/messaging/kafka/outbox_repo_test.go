package kafka

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	ev, err := NewOutboxEvent("rid-1", "tracking_session", "s-1", "session_started", "topic.v1", "emp-1",
		map[string]string{"session_id": "s-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, OutboxStatusPending, ev.Status)
	assert.Equal(t, "emp-1", ev.Key)
	assert.JSONEq(t, `{"session_id":"s-1"}`, string(ev.Payload))
	assert.NoError(t, ValidateOutboxEvent(ev))
}

func TestValidateOutboxEvent(t *testing.T) {
	base := OutboxEvent{ID: "1", Topic: "t", Payload: []byte("{}"), Status: OutboxStatusPending}

	noID := base
	noID.ID = ""
	assert.EqualError(t, ValidateOutboxEvent(noID), "outbox id is required")

	noTopic := base
	noTopic.Topic = ""
	assert.EqualError(t, ValidateOutboxEvent(noTopic), "outbox topic is required")

	badStatus := base
	badStatus.Status = "queued"
	assert.EqualError(t, ValidateOutboxEvent(badStatus), "invalid outbox status: queued")
}

func TestOutboxRepository_CreateWithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ev := OutboxEvent{
		ID: "id-1", RequestID: "rid", AggregateType: "tracking_session", AggregateID: "s-1",
		EventType: "session_closed", Topic: "topic.v1", Key: "emp-1", Payload: []byte(`{}`), Status: OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(ev.ID, ev.RequestID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Topic, ev.Key, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	repo := NewOutboxRepository(db).WithTx(tx)
	require.NoError(t, repo.Create(context.Background(), ev))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "message_key",
		"payload", "status", "retry_count", "next_retry_at",
	}).AddRow("id-1", "rid", "tracking_session", "s-1", "session_started", "topic.v1", "emp-1", []byte(`{}`), OutboxStatusPending, 0, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, maxOutboxRetries, 10).
		WillReturnRows(rows)

	out, err := NewOutboxRepository(db).ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "emp-1", out[0].Key)
	assert.Equal(t, "session_started", out[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	before := time.Now().Add(-24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outbox_events")).
		WithArgs(OutboxStatusSent, before).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := NewOutboxRepository(db).PurgeSent(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
