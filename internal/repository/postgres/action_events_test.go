package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

func TestBulkInsertActionEvents_IgnoresConflicts(t *testing.T) {
	repo, mock := newTestRepository(t)

	events := []domain.ActionEvent{
		{ID: idtype.New[idtype.ActionEventID](), UserID: 1, ActionID: 2, DateTime: time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC), Enabled: true},
		{ID: idtype.New[idtype.ActionEventID](), UserID: 1, ActionID: 2, DateTime: time.Date(2023, 1, 9, 12, 0, 0, 0, time.UTC), Enabled: true},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO action_event`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO action_event`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.BulkInsertActionEvents(context.Background(), events)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertActionEvents_Empty(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.BulkInsertActionEvents(context.Background(), nil))
}

func TestHasLinkingEvent(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.HasLinkingEvent(context.Background(), idtype.UserID(7), idtype.ActionProviderID(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDeletableActionEvents(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"id", "datetime", "delete_after_ms"}).
		AddRow(int64(1), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), int64(3600000))
	mock.ExpectQuery(`SELECT ae.id`).WillReturnRows(rows)

	events, err := repo.ListDeletableActionEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, time.Hour, events[0].DeleteAfter)
}
