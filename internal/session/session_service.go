package session

import (
	"context"
	"database/sql"
	"errors"
	"go-tracking/internal/events"
	"go-tracking/internal/geo"
	"go-tracking/internal/messaging/kafka"
	"go-tracking/internal/metrics"
	sessionerrors "go-tracking/internal/session/errors"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/contextutil"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxStartAttempts    = 3
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
	aggregateType       = "tracking_session"
)

//go:generate mockgen -source=session_service.go -destination=mock/session_service_mock.go -package=mock
type Service interface {
	Start(ctx context.Context, employeeID string, req StartSessionRequest) (StartSessionResponse, error)
	Stop(ctx context.Context, employeeID string, req StopSessionRequest) (StopSessionResponse, error)
	AutoOff(ctx context.Context, cutoff time.Time) (int, error)
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)
	GetHistory(ctx context.Context, employeeID string, limit int) ([]SessionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	live   LivePublisher
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, live LivePublisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("session.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.service")
	}
	if live == nil {
		live = noopPublisher{}
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		live:   live,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

// Start opens a session. An ON session is closed first in the same
// transaction unless req.AutoClose is false. Losing the race on
// ActiveSessionIndex retries the whole sequence.
func (s *service) Start(ctx context.Context, employeeID string, req StartSessionRequest) (StartSessionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("start session requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	lat, lon, err := validateCoordinates(employeeID, req.Latitude, req.Longitude)
	if err != nil {
		return StartSessionResponse{}, err
	}

	for attempt := 1; attempt <= maxStartAttempts; attempt++ {
		started, closed, err := s.startOnce(ctx, employeeID, lat, lon, req.AutoClose)
		if err == nil {
			s.afterStart(ctx, started, closed)
			return StartSessionResponse{
				SessionID: started.ID.String(),
				StartTime: started.StartTime,
				Status:    started.Status,
			}, nil
		}
		if !errors.Is(err, errActiveConflict) {
			s.logger.Error("start session failed",
				zap.String("request_id", rid),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return StartSessionResponse{}, err
		}

		metrics.SessionStartRetries.Inc()
		s.logger.Warn("start session lost active-session race, retrying",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Int("attempt", attempt),
		)
	}

	return StartSessionResponse{}, sessionerrors.ErrSessionAlreadyActive
}

func (s *service) startOnce(ctx context.Context, employeeID string, lat, lon float64, autoClose *bool) (*TrackingSession, *TrackingSession, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()

	var closed *TrackingSession
	active, err := qtx.LockActiveByEmployee(ctx, employeeID)
	switch {
	case err == nil:
		if autoClose != nil && !*autoClose {
			return nil, nil, sessionerrors.ErrSessionAlreadyActive
		}
		active.Close(now, StatusOff, &lat, &lon)
		if err := qtx.Close(ctx, active); err != nil {
			// Closed concurrently; treat like a lost race.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, errActiveConflict
			}
			return nil, nil, mapRepositoryError(err)
		}
		if err := s.enqueue(ctx, tx, active, events.SessionClosed, now); err != nil {
			return nil, nil, err
		}
		closed = active
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, nil, mapRepositoryError(err)
	}

	started := &TrackingSession{
		ID:             uuid.New(),
		EmployeeID:     uuid.MustParse(employeeID),
		Status:         StatusOn,
		StartTime:      now,
		StartLatitude:  lat,
		StartLongitude: lon,
	}
	if err := qtx.Create(ctx, started); err != nil {
		return nil, nil, mapRepositoryError(err)
	}
	if err := s.enqueue(ctx, tx, started, events.SessionStarted, now); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, mapRepositoryError(err)
	}
	return started, closed, nil
}

func (s *service) afterStart(ctx context.Context, started, closed *TrackingSession) {
	name := s.employeeName(ctx, started.EmployeeID.String())
	if closed != nil {
		metrics.SessionTransitions.WithLabelValues(StatusOff).Inc()
		s.publish(closed, name)
		s.logger.Info("previous session auto-closed on start",
			zap.String("session_id", closed.ID.String()),
			zap.Int("duration_minutes", closed.DurationMinutes),
		)
	}
	metrics.SessionTransitions.WithLabelValues(StatusOn).Inc()
	s.publish(started, name)
	s.logger.Info("start session success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", started.EmployeeID.String()),
		zap.String("session_id", started.ID.String()),
	)
}

func (s *service) Stop(ctx context.Context, employeeID string, req StopSessionRequest) (StopSessionResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("stop session requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	lat, lon, err := validateCoordinates(employeeID, req.Latitude, req.Longitude)
	if err != nil {
		return StopSessionResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("stop session begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return StopSessionResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	active, err := qtx.LockActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StopSessionResponse{}, sessionerrors.ErrSessionNotActive
		}
		s.logger.Error("stop session lookup failed", zap.String("request_id", rid), zap.Error(err))
		return StopSessionResponse{}, mapRepositoryError(err)
	}

	now := s.now()
	active.Close(now, StatusOff, &lat, &lon)
	if err := qtx.Close(ctx, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StopSessionResponse{}, sessionerrors.ErrSessionNotActive
		}
		s.logger.Error("stop session persist failed", zap.String("request_id", rid), zap.Error(err))
		return StopSessionResponse{}, mapRepositoryError(err)
	}
	if err := s.enqueue(ctx, tx, active, events.SessionClosed, now); err != nil {
		return StopSessionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("stop session commit failed", zap.String("request_id", rid), zap.Error(err))
		return StopSessionResponse{}, mapRepositoryError(err)
	}

	metrics.SessionTransitions.WithLabelValues(StatusOff).Inc()
	s.publish(active, s.employeeName(ctx, employeeID))
	s.logger.Info("stop session success",
		zap.String("request_id", rid),
		zap.String("session_id", active.ID.String()),
		zap.Int("duration_minutes", active.DurationMinutes),
	)

	return StopSessionResponse{
		SessionID: active.ID.String(),
		StartTime: active.StartTime,
		EndTime:   *active.EndTime,
		Duration:  active.DurationMinutes,
		Status:    active.Status,
	}, nil
}

// AutoOff closes every ON session that started before cutoff. The bulk
// update and its outbox rows commit together.
func (s *service) AutoOff(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapRepositoryError(err)
	}
	defer tx.Rollback()

	closed, err := s.repo.WithTx(tx).MarkAutoOff(ctx, cutoff)
	if err != nil {
		return 0, mapRepositoryError(err)
	}

	now := s.now()
	for i := range closed {
		if err := s.enqueue(ctx, tx, &closed[i], events.SessionAutoClosed, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, mapRepositoryError(err)
	}

	for i := range closed {
		metrics.SessionTransitions.WithLabelValues(StatusAutoOff).Inc()
		s.publish(&closed[i], closed[i].EmployeeName())
	}
	return len(closed), nil
}

func (s *service) GetStatus(ctx context.Context, employeeID string) (StatusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return StatusResponse{}, sessionerrors.ErrInvalidEmployeeID
	}

	active, err := s.repo.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{Active: false}, nil
		}
		s.logger.Error("get session status failed", zap.String("employee_id", employeeID), zap.Error(err))
		return StatusResponse{}, mapRepositoryError(err)
	}

	resp := mapToResponse(*active)
	return StatusResponse{Active: true, Session: &resp}, nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string, limit int) ([]SessionResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, sessionerrors.ErrInvalidEmployeeID
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID, limit)
	if err != nil {
		s.logger.Error("get session history failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, ts *TrackingSession, eventType string, at time.Time) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.SessionLifecycleEvent{
		EventType:       eventType,
		RequestID:       rid,
		SessionID:       ts.ID.String(),
		EmployeeID:      ts.EmployeeID.String(),
		Status:          ts.Status,
		StartTime:       ts.StartTime,
		EndTime:         ts.EndTime,
		DurationMinutes: ts.DurationMinutes,
		OccurredAt:      at,
	}
	row, err := kafka.NewOutboxEvent(rid, aggregateType, event.SessionID, eventType,
		events.SessionLifecycleTopic, event.EmployeeID, event)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("session outbox persist failed",
			zap.String("request_id", rid),
			zap.String("session_id", event.SessionID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) publish(ts *TrackingSession, name string) {
	at := ts.StartTime
	if ts.EndTime != nil {
		at = *ts.EndTime
	}
	s.live.PublishSessionChange(events.SessionUpdate{
		EmployeeID:   ts.EmployeeID.String(),
		EmployeeName: name,
		SessionID:    ts.ID.String(),
		Status:       ts.Status,
		Timestamp:    at,
	})
}

// employeeName is best effort; live events go out without a name on failure.
func (s *service) employeeName(ctx context.Context, employeeID string) string {
	name, err := s.repo.FindEmployeeName(ctx, employeeID)
	if err != nil {
		s.logger.Warn("lookup employee name failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ""
	}
	return name
}

func validateCoordinates(employeeID string, lat, lon *float64) (float64, float64, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return 0, 0, sessionerrors.ErrInvalidEmployeeID
	}
	if lat == nil {
		return 0, 0, apperror.RequiredField("Latitude")
	}
	if lon == nil {
		return 0, 0, apperror.RequiredField("Longitude")
	}
	if !geo.ValidCoordinate(*lat, *lon) {
		return 0, 0, apperror.InvalidField("Coordinates")
	}
	return *lat, *lon, nil
}

func mapToResponse(ts TrackingSession) SessionResponse {
	return SessionResponse{
		ID:             ts.ID.String(),
		EmployeeID:     ts.EmployeeID.String(),
		EmployeeName:   ts.EmployeeName(),
		Status:         ts.Status,
		StartTime:      ts.StartTime,
		EndTime:        ts.EndTime,
		StartLatitude:  ts.StartLatitude,
		StartLongitude: ts.StartLongitude,
		EndLatitude:    ts.EndLatitude,
		EndLongitude:   ts.EndLongitude,
		Duration:       ts.DurationMinutes,
	}
}

func mapToListResponse(rows []TrackingSession) []SessionResponse {
	res := make([]SessionResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
