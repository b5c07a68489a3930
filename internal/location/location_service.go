package location

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go-tracking/internal/events"
	"go-tracking/internal/geo"
	locationerrors "go-tracking/internal/location/errors"
	"go-tracking/internal/metrics"
	"go-tracking/internal/session"
	sessionerrors "go-tracking/internal/session/errors"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	maxBatchSize        = 50
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
	snapshotConcurrency = 8
	snapshotTimeout     = 10 * time.Second
	dateLayout          = "2006-01-02"

	sourceSingle = "single"
	sourceBatch  = "batch"
)

//go:generate mockgen -source=location_service.go -destination=mock/location_service_mock.go -package=mock
type Service interface {
	TrackLocation(ctx context.Context, employeeID string, req SampleRequest) (TrackResponse, error)
	TrackBatch(ctx context.Context, employeeID string, req BatchRequest) (BatchResponse, error)
	GetHistory(ctx context.Context, employeeID string, q HistoryQuery) ([]LocationResponse, error)
	ActiveSnapshot(ctx context.Context) ([]events.SnapshotEntry, error)
}

type service struct {
	repo      Repository
	sessions  SessionFinder
	filter    geo.Filter
	loc       *time.Location
	live      LivePublisher
	snapshots singleflight.Group
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires ingestion. loc is the business timezone used to turn
// history dates into instants; nil means UTC.
func NewService(repo Repository, sessions SessionFinder, filter geo.Filter, loc *time.Location, live LivePublisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("location.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.service")
	}
	if live == nil {
		live = noopPublisher{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		filter:   filter,
		loc:      loc,
		live:     live,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) TrackLocation(ctx context.Context, employeeID string, req SampleRequest) (TrackResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(employeeID); err != nil {
		return TrackResponse{}, sessionerrors.ErrInvalidEmployeeID
	}
	if err := validateSample(req); err != nil {
		return TrackResponse{}, err
	}

	active, err := s.activeSession(ctx, employeeID)
	if err != nil {
		return TrackResponse{}, err
	}

	prev, err := s.latest(ctx, active.ID.String())
	if err != nil {
		s.logger.Error("load latest sample failed",
			zap.String("request_id", rid),
			zap.String("session_id", active.ID.String()),
			zap.Error(err),
		)
		return TrackResponse{}, err
	}

	sample := s.newSample(active, req)
	if !s.filter.ShouldAccept(prev, *sample.filterSample()) {
		metrics.RecordSample(sourceSingle, false)
		return TrackResponse{Saved: false}, nil
	}

	if err := s.repo.Create(ctx, &sample); err != nil {
		s.logger.Error("persist sample failed",
			zap.String("request_id", rid),
			zap.String("session_id", active.ID.String()),
			zap.Error(err),
		)
		return TrackResponse{}, mapRepositoryError(err)
	}
	metrics.RecordSample(sourceSingle, true)
	s.publish(active, sample)

	ts := sample.Timestamp
	return TrackResponse{
		Saved:      true,
		LocationID: sample.ID.String(),
		Timestamp:  &ts,
	}, nil
}

// TrackBatch filters samples in submitted order, chaining each candidate to
// the last accepted one, and writes the survivors in one insert.
func (s *service) TrackBatch(ctx context.Context, employeeID string, req BatchRequest) (BatchResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(employeeID); err != nil {
		return BatchResponse{}, sessionerrors.ErrInvalidEmployeeID
	}
	switch {
	case len(req.Locations) == 0:
		return BatchResponse{}, locationerrors.ErrBatchEmpty
	case len(req.Locations) > maxBatchSize:
		return BatchResponse{}, locationerrors.ErrBatchTooLarge
	}
	for i, item := range req.Locations {
		if err := validateSample(item); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return BatchResponse{}, appErr.WithDetails(map[string]int{"index": i})
			}
			return BatchResponse{}, err
		}
	}

	active, err := s.activeSession(ctx, employeeID)
	if err != nil {
		return BatchResponse{}, err
	}

	prev, err := s.latest(ctx, active.ID.String())
	if err != nil {
		return BatchResponse{}, err
	}

	accepted := make([]LocationSample, 0, len(req.Locations))
	for _, item := range req.Locations {
		sample := s.newSample(active, item)
		candidate := sample.filterSample()
		if !s.filter.ShouldAccept(prev, *candidate) {
			metrics.RecordSample(sourceBatch, false)
			continue
		}
		accepted = append(accepted, sample)
		prev = candidate
	}

	total := len(req.Locations)
	if len(accepted) == 0 {
		return BatchResponse{Saved: 0, Total: total}, nil
	}

	if err := s.repo.CreateBatch(ctx, accepted); err != nil {
		s.logger.Error("persist batch failed",
			zap.String("request_id", rid),
			zap.String("session_id", active.ID.String()),
			zap.Int("accepted", len(accepted)),
			zap.Error(err),
		)
		return BatchResponse{}, mapRepositoryError(err)
	}
	for range accepted {
		metrics.RecordSample(sourceBatch, true)
	}

	s.publish(active, accepted[len(accepted)-1])
	s.logger.Debug("batch stored",
		zap.String("request_id", rid),
		zap.String("session_id", active.ID.String()),
		zap.Int("saved", len(accepted)),
		zap.Int("total", total),
	)

	return BatchResponse{Saved: len(accepted), Total: total}, nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string, q HistoryQuery) ([]LocationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, sessionerrors.ErrInvalidEmployeeID
	}

	filter := HistoryFilter{Limit: q.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}

	if q.StartDate != "" {
		from, err := time.ParseInLocation(dateLayout, q.StartDate, s.loc)
		if err != nil {
			return nil, locationerrors.ErrInvalidDate
		}
		filter.From = &from
	}
	if q.EndDate != "" {
		end, err := time.ParseInLocation(dateLayout, q.EndDate, s.loc)
		if err != nil {
			return nil, locationerrors.ErrInvalidDate
		}
		// endDate is inclusive.
		to := end.AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, locationerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindHistory(ctx, employeeID, filter)
	if err != nil {
		s.logger.Error("get location history failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]LocationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out, nil
}

// ActiveSnapshot lists the latest position of every ON session. Sessions
// without samples are left out. Concurrent callers share one build, which
// is detached from the first caller's cancellation.
func (s *service) ActiveSnapshot(ctx context.Context) ([]events.SnapshotEntry, error) {
	v, err, _ := s.snapshots.Do("snapshot", func() (any, error) {
		bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
		defer cancel()
		return s.buildSnapshot(bctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]events.SnapshotEntry), nil
}

func (s *service) buildSnapshot(ctx context.Context) ([]events.SnapshotEntry, error) {
	active, err := s.sessions.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("snapshot list sessions failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	found := make([]*events.SnapshotEntry, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotConcurrency)
	for i := range active {
		ts := active[i]
		g.Go(func() error {
			latest, err := s.repo.FindLatestBySession(gctx, ts.ID.String())
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("latest sample for session %s: %w", ts.ID, err)
			}
			found[i] = &events.SnapshotEntry{
				Employee: events.SnapshotEmployee{ID: ts.EmployeeID.String(), Name: ts.EmployeeName()},
				Session: events.SnapshotSession{
					ID:        ts.ID.String(),
					StartTime: ts.StartTime,
					Status:    ts.Status,
				},
				Location:     events.Coordinates{Latitude: latest.Latitude, Longitude: latest.Longitude},
				Accuracy:     latest.Accuracy,
				BatteryLevel: latest.BatteryLevel,
				Timestamp:    latest.Timestamp,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("snapshot build failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	entries := make([]events.SnapshotEntry, 0, len(found))
	for _, e := range found {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

func (s *service) activeSession(ctx context.Context, employeeID string) (*session.TrackingSession, error) {
	active, err := s.sessions.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sessionerrors.ErrSessionNotActive
		}
		s.logger.Error("lookup active session failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}
	return active, nil
}

func (s *service) latest(ctx context.Context, sessionID string) (*geo.Sample, error) {
	last, err := s.repo.FindLatestBySession(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return last.filterSample(), nil
}

func (s *service) newSample(active *session.TrackingSession, req SampleRequest) LocationSample {
	return LocationSample{
		ID:           uuid.New(),
		EmployeeID:   active.EmployeeID,
		SessionID:    active.ID,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		Accuracy:     req.Accuracy,
		BatteryLevel: req.BatteryLevel,
		Timestamp:    req.Timestamp.UTC(),
		ReceivedAt:   s.now(),
	}
}

func (s *service) publish(active *session.TrackingSession, sample LocationSample) {
	s.live.PublishLocation(events.LocationUpdate{
		EmployeeID:   sample.EmployeeID.String(),
		EmployeeName: active.EmployeeName(),
		SessionID:    sample.SessionID.String(),
		Latitude:     sample.Latitude,
		Longitude:    sample.Longitude,
		Accuracy:     sample.Accuracy,
		BatteryLevel: sample.BatteryLevel,
		Timestamp:    sample.Timestamp,
	})
}

func validateSample(req SampleRequest) error {
	if req.Latitude == nil {
		return apperror.RequiredField("Latitude")
	}
	if req.Longitude == nil {
		return apperror.RequiredField("Longitude")
	}
	if !geo.ValidCoordinate(*req.Latitude, *req.Longitude) {
		return apperror.InvalidField("Coordinates")
	}
	if math.IsNaN(req.Accuracy) || req.Accuracy < 0 {
		return apperror.OutOfRangeField("Accuracy", "gte=0")
	}
	if b := req.BatteryLevel; b != nil && (math.IsNaN(*b) || *b < 0 || *b > 100) {
		return apperror.OutOfRangeField("Battery Level", "0-100")
	}
	if req.Timestamp.IsZero() {
		return apperror.RequiredField("Timestamp")
	}
	return nil
}

func mapToResponse(l LocationSample) LocationResponse {
	return LocationResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		SessionID:    l.SessionID.String(),
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Accuracy:     l.Accuracy,
		BatteryLevel: l.BatteryLevel,
		Timestamp:    l.Timestamp,
		ReceivedAt:   l.ReceivedAt,
	}
}
