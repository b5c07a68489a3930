package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-tracking/internal/events"
	"go-tracking/internal/messaging/kafka"
	kafkamock "go-tracking/internal/messaging/kafka/mock"
	"go-tracking/internal/session"
	sessionerrors "go-tracking/internal/session/errors"
	"go-tracking/internal/session/mock"
	"go-tracking/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	updates []events.SessionUpdate
}

func (p *recordingPublisher) PublishSessionChange(u events.SessionUpdate) {
	p.updates = append(p.updates, u)
}

type fixture struct {
	repo   *mock.MockRepository
	outbox *kafkamock.MockOutboxRepository
	sqlMk  sqlmock.Sqlmock
	live   *recordingPublisher
	svc    session.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	db, sqlMk, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		repo:   mock.NewMockRepository(ctrl),
		outbox: kafkamock.NewMockOutboxRepository(ctrl),
		sqlMk:  sqlMk,
		live:   &recordingPublisher{},
	}
	f.repo.EXPECT().WithTx(gomock.Any()).Return(f.repo).AnyTimes()
	f.outbox.EXPECT().WithTx(gomock.Any()).Return(f.outbox).AnyTimes()
	f.svc = session.NewService(db, f.repo, f.outbox, f.live, zap.NewNop())
	return f
}

func ptr[T any](v T) *T { return &v }

func outboxEventType(eventType string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		ev, ok := x.(kafka.OutboxEvent)
		return ok && ev.EventType == eventType && ev.Topic == events.SessionLifecycleTopic
	})
}

func TestService_Start_NoActiveSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()

	f.sqlMk.ExpectBegin()
	f.repo.EXPECT().LockActiveByEmployee(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)
	f.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, s *session.TrackingSession) error {
		assert.Equal(t, session.StatusOn, s.Status)
		assert.Equal(t, 23.81, s.StartLatitude)
		assert.Nil(t, s.EndTime)
		return nil
	})
	f.outbox.EXPECT().Create(ctx, outboxEventType(events.SessionStarted)).Return(nil)
	f.sqlMk.ExpectCommit()
	f.repo.EXPECT().FindEmployeeName(ctx, employeeID).Return("Rahim", nil)

	resp, err := f.svc.Start(ctx, employeeID, session.StartSessionRequest{Latitude: ptr(23.81), Longitude: ptr(90.41)})
	require.NoError(t, err)
	assert.Equal(t, session.StatusOn, resp.Status)
	assert.NotEmpty(t, resp.SessionID)

	require.Len(t, f.live.updates, 1)
	assert.Equal(t, session.StatusOn, f.live.updates[0].Status)
	assert.Equal(t, "Rahim", f.live.updates[0].EmployeeName)
	assert.NoError(t, f.sqlMk.ExpectationsWereMet())
}

func TestService_Start_ClosesExistingSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()

	existing := &session.TrackingSession{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		Status:     session.StatusOn,
		StartTime:  time.Now().UTC().Add(-90 * time.Minute),
	}

	f.sqlMk.ExpectBegin()
	f.repo.EXPECT().LockActiveByEmployee(ctx, employeeID).Return(existing, nil)
	f.repo.EXPECT().Close(ctx, existing).DoAndReturn(func(_ context.Context, s *session.TrackingSession) error {
		assert.Equal(t, session.StatusOff, s.Status)
		require.NotNil(t, s.EndTime)
		assert.InDelta(t, 90, s.DurationMinutes, 1)
		assert.Equal(t, 1.5, *s.EndLatitude)
		return nil
	})
	f.outbox.EXPECT().Create(ctx, outboxEventType(events.SessionClosed)).Return(nil)
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.outbox.EXPECT().Create(ctx, outboxEventType(events.SessionStarted)).Return(nil)
	f.sqlMk.ExpectCommit()
	f.repo.EXPECT().FindEmployeeName(ctx, employeeID).Return("", errors.New("lookup failed"))

	resp, err := f.svc.Start(ctx, employeeID, session.StartSessionRequest{Latitude: ptr(1.5), Longitude: ptr(2.5)})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID.String(), resp.SessionID)

	require.Len(t, f.live.updates, 2)
	assert.Equal(t, session.StatusOff, f.live.updates[0].Status)
	assert.Equal(t, existing.ID.String(), f.live.updates[0].SessionID)
	assert.Equal(t, session.StatusOn, f.live.updates[1].Status)
	assert.NoError(t, f.sqlMk.ExpectationsWereMet())
}

func TestService_Start_AutoCloseRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()

	f.sqlMk.ExpectBegin()
	f.repo.EXPECT().LockActiveByEmployee(ctx, employeeID).Return(&session.TrackingSession{ID: uuid.New(), Status: session.StatusOn}, nil)
	f.sqlMk.ExpectRollback()

	_, err := f.svc.Start(ctx, employeeID, session.StartSessionRequest{
		Latitude: ptr(1.0), Longitude: ptr(1.0), AutoClose: ptr(false),
	})
	assert.ErrorIs(t, err, sessionerrors.ErrSessionAlreadyActive)
	assert.Empty(t, f.live.updates)
	assert.NoError(t, f.sqlMk.ExpectationsWereMet())
}

func TestService_Start_RetriesOnActiveConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()
	conflict := &pgconn.PgError{Code: "23505", ConstraintName: session.ActiveSessionIndex}

	f.sqlMk.ExpectBegin()
	f.sqlMk.ExpectRollback()
	f.sqlMk.ExpectBegin()
	f.sqlMk.ExpectCommit()

	f.repo.EXPECT().LockActiveByEmployee(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound).Times(2)
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(conflict)
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.outbox.EXPECT().Create(ctx, outboxEventType(events.SessionStarted)).Return(nil)
	f.repo.EXPECT().FindEmployeeName(ctx, employeeID).Return("Rahim", nil)

	resp, err := f.svc.Start(ctx, employeeID, session.StartSessionRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)})
	require.NoError(t, err)
	assert.Equal(t, session.StatusOn, resp.Status)
	assert.NoError(t, f.sqlMk.ExpectationsWereMet())
}

func TestService_Start_RetriesExhausted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()
	conflict := &pgconn.PgError{Code: "23505", ConstraintName: session.ActiveSessionIndex}

	for i := 0; i < 3; i++ {
		f.sqlMk.ExpectBegin()
		f.sqlMk.ExpectRollback()
	}
	f.repo.EXPECT().LockActiveByEmployee(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound).Times(3)
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(conflict).Times(3)

	_, err := f.svc.Start(ctx, employeeID, session.StartSessionRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)})
	assert.ErrorIs(t, err, sessionerrors.ErrSessionAlreadyActive)
	assert.NoError(t, f.sqlMk.ExpectationsWereMet())
}

func TestService_Start_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "not-a-uuid", session.StartSessionRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)})
	assert.ErrorIs(t, err, sessionerrors.ErrInvalidEmployeeID)

	_, err = f.svc.Start(ctx, uuid.NewString(), session.StartSessionRequest{Longitude: ptr(1.0)})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = f.svc.Start(ctx, uuid.NewString(), session.StartSessionRequest{Latitude: ptr(91.0), Longitude: ptr(1.0)})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_Stop_NoActiveSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()

	f.sqlMk.ExpectBegin()
	f.repo.EXPECT().LockActiveByEmployee(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)
	f.sqlMk.ExpectRollback()

	_, err := f.svc.Stop(ctx, employeeID, session.StopSessionRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)})
	assert.ErrorIs(t, err, sessionerrors.ErrSessionNotActive)
	assert.Equal(t, 409, apperror.ToHTTP(err).Status)
	assert.NoError(t, f.sqlMk.ExpectationsWereMet())
}

func TestService_Stop_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()
	start := time.Now().UTC().Add(-30*time.Minute - 20*time.Second)
	active := &session.TrackingSession{ID: uuid.New(), EmployeeID: uuid.MustParse(employeeID), Status: session.StatusOn, StartTime: start}

	f.sqlMk.ExpectBegin()
	f.repo.EXPECT().LockActiveByEmployee(ctx, employeeID).Return(active, nil)
	f.repo.EXPECT().Close(ctx, active).Return(nil)
	f.outbox.EXPECT().Create(ctx, outboxEventType(events.SessionClosed)).Return(nil)
	f.sqlMk.ExpectCommit()
	f.repo.EXPECT().FindEmployeeName(ctx, employeeID).Return("Karim", nil)

	resp, err := f.svc.Stop(ctx, employeeID, session.StopSessionRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)})
	require.NoError(t, err)
	assert.Equal(t, session.StatusOff, resp.Status)
	assert.Equal(t, 30, resp.Duration)
	assert.True(t, resp.EndTime.After(resp.StartTime))
	require.Len(t, f.live.updates, 1)
	assert.Equal(t, session.StatusOff, f.live.updates[0].Status)
}

func TestService_Stop_StorageUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.sqlMk.ExpectBegin().WillReturnError(context.DeadlineExceeded)

	_, err := f.svc.Stop(ctx, uuid.NewString(), session.StopSessionRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)})
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
	assert.Equal(t, 503, apperror.ToHTTP(err).Status)
}

func TestService_AutoOff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-time.Hour)

	closed := []session.TrackingSession{
		{ID: uuid.New(), EmployeeID: uuid.New(), Status: session.StatusAutoOff, StartTime: cutoff.Add(-time.Hour), EndTime: &cutoff, DurationMinutes: 60,
			Employee: &session.EmployeeRef{FullName: "Tanvir Hasan"}},
		{ID: uuid.New(), EmployeeID: uuid.New(), Status: session.StatusAutoOff, StartTime: cutoff.Add(-5 * time.Minute), EndTime: &cutoff, DurationMinutes: 5},
	}

	f.sqlMk.ExpectBegin()
	f.repo.EXPECT().MarkAutoOff(ctx, cutoff).Return(closed, nil)
	f.outbox.EXPECT().Create(ctx, outboxEventType(events.SessionAutoClosed)).Return(nil).Times(2)
	f.sqlMk.ExpectCommit()

	n, err := f.svc.AutoOff(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, f.live.updates, 2)
	assert.Equal(t, session.StatusAutoOff, f.live.updates[0].Status)
	assert.Equal(t, cutoff, f.live.updates[0].Timestamp)
	assert.Equal(t, "Tanvir Hasan", f.live.updates[0].EmployeeName)
	assert.Empty(t, f.live.updates[1].EmployeeName)
	assert.NoError(t, f.sqlMk.ExpectationsWereMet())
}

func TestService_AutoOff_NothingToClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cutoff := time.Now().UTC()

	f.sqlMk.ExpectBegin()
	f.repo.EXPECT().MarkAutoOff(ctx, cutoff).Return(nil, nil)
	f.sqlMk.ExpectCommit()

	n, err := f.svc.AutoOff(ctx, cutoff)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.live.updates)
}

func TestService_GetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()

	f.repo.EXPECT().FindActiveByEmployee(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)
	resp, err := f.svc.GetStatus(ctx, employeeID)
	require.NoError(t, err)
	assert.False(t, resp.Active)
	assert.Nil(t, resp.Session)

	active := &session.TrackingSession{
		ID: uuid.New(), EmployeeID: uuid.MustParse(employeeID), Status: session.StatusOn,
		Employee: &session.EmployeeRef{FullName: "Rahim"},
	}
	f.repo.EXPECT().FindActiveByEmployee(ctx, employeeID).Return(active, nil)
	resp, err = f.svc.GetStatus(ctx, employeeID)
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, "Rahim", resp.Session.EmployeeName)
}

func TestService_GetHistory_ClampsLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employeeID := uuid.NewString()

	f.repo.EXPECT().FindByEmployee(ctx, employeeID, 100).Return([]session.TrackingSession{{ID: uuid.New()}}, nil)
	rows, err := f.svc.GetHistory(ctx, employeeID, 1000)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	f.repo.EXPECT().FindByEmployee(ctx, employeeID, 50).Return(nil, nil)
	_, err = f.svc.GetHistory(ctx, employeeID, 0)
	require.NoError(t, err)
}
