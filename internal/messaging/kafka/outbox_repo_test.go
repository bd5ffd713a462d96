package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	event := kafka.OutboxEvent{
		ID:            "0b6f4a3e-4a0e-4c61-9c59-2d3f7f0f8b11",
		RequestID:     "req-1",
		AggregateType: "payslip",
		AggregateID:   "PAY-EMP001-1",
		EventType:     "payslip_generated",
		Topic:         "hr.payroll.payslip.generated.v1",
		Payload:       []byte(`{"payslip_id":"PAY-EMP001-1"}`),
		Status:        kafka.OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalidEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	err = repo.Create(context.Background(), kafka.OutboxEvent{ID: "x", Topic: "t", Status: kafka.OutboxStatusPending})

	assert.EqualError(t, err, "outbox payload is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("o-1", "", "payslip", "PAY-EMP001-1", "payslip_generated", "t", []byte(`{}`), "pending", 0, now)

	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)

	assert.NoError(t, err)
	if assert.Len(t, events, 1) {
		assert.Equal(t, "PAY-EMP001-1", events[0].AggregateID)
		assert.Equal(t, now, events[0].NextRetryAt)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedParksAfterMaxAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("o-1", kafka.OutboxStatusFailed, "broker down", kafka.MaxOutboxAttempts, kafka.OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "o-1", "broker down")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM outbox_events").
		WithArgs(kafka.OutboxStatusSent, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := kafka.NewOutboxRepository(db).PurgeSent(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
