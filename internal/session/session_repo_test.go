package session

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-tracking/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepository_MarkAutoOff(t *testing.T) {
	gdb, _, mock := testutil.NewGormMock(t)
	repo := NewRepository(gdb)

	cutoff := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	start := cutoff.Add(-time.Hour)
	id, emp := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "employee_id", "status", "start_time", "end_time", "start_latitude", "start_longitude",
		"end_latitude", "end_longitude", "duration_minutes", "created_at", "updated_at", "employee_name",
	}).AddRow(id.String(), emp.String(), StatusAutoOff, start, cutoff, 1.0, 2.0, nil, nil, 60, start, cutoff, "Nadia Islam")

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tracking_sessions")).
		WithArgs(StatusAutoOff, cutoff, cutoff, StatusOn, cutoff).
		WillReturnRows(rows)

	closed, err := repo.MarkAutoOff(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, id, closed[0].ID)
	assert.Equal(t, StatusAutoOff, closed[0].Status)
	assert.Equal(t, 60, closed[0].DurationMinutes)
	require.NotNil(t, closed[0].EndTime)
	assert.True(t, closed[0].EndTime.Equal(cutoff))
	assert.Equal(t, emp, closed[0].EmployeeID)
	assert.Equal(t, "Nadia Islam", closed[0].EmployeeName())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Close_NotActive(t *testing.T) {
	gdb, _, mock := testutil.NewGormMock(t)
	repo := NewRepository(gdb)

	end := time.Now().UTC()
	s := &TrackingSession{ID: uuid.New(), Status: StatusOff, EndTime: &end}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tracking_sessions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Close(context.Background(), s)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Close_Success(t *testing.T) {
	gdb, _, mock := testutil.NewGormMock(t)
	repo := NewRepository(gdb)

	end := time.Now().UTC()
	s := &TrackingSession{ID: uuid.New(), Status: StatusOff, EndTime: &end, DurationMinutes: 12}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tracking_sessions" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Close(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockActiveByEmployee(t *testing.T) {
	gdb, _, mock := testutil.NewGormMock(t)
	repo := NewRepository(gdb)
	emp := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "tracking_sessions" WHERE .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "status"}).AddRow(uuid.NewString(), emp.String(), StatusOn))

	s, err := repo.LockActiveByEmployee(context.Background(), emp.String())
	require.NoError(t, err)
	assert.Equal(t, StatusOn, s.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindEmployeeName(t *testing.T) {
	gdb, _, mock := testutil.NewGormMock(t)
	repo := NewRepository(gdb)
	emp := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT full_name FROM employees")).
		WithArgs(emp).
		WillReturnRows(sqlmock.NewRows([]string{"full_name"}).AddRow("Rahim Uddin"))

	name, err := repo.FindEmployeeName(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", name)
}
