package report

import (
	"context"
	"errors"
	"math"
	"time"

	reporterrors "go-tracking/internal/report/errors"
	"go-tracking/internal/session"
	sessionerrors "go-tracking/internal/session/errors"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/dberror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	dateLayout   = "2006-01-02"
	maxRangeDays = 92

	sharedWorkTimeout = 10 * time.Second
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	DailySummary(ctx context.Context, employeeID, date string) (DailySummaryResponse, error)
	Recalculate(ctx context.Context, employeeID, date string) (DailySummaryResponse, error)
	RecalculateForSession(ctx context.Context, employeeID string, startTime time.Time) error
	RangeSummary(ctx context.Context, employeeID, startDate, endDate string) (RangeSummaryResponse, error)
}

type service struct {
	repo   Repository
	loc    *time.Location
	group  singleflight.Group
	logger *zap.Logger
}

// NewService computes days in loc, the business timezone.
func NewService(repo Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, loc: loc, logger: l}
}

// DailySummary serves the stored row when there is one and computes it
// otherwise. Concurrent misses for the same day share one computation, run
// detached from the first caller's cancellation.
func (s *service) DailySummary(ctx context.Context, employeeID, date string) (DailySummaryResponse, error) {
	day, err := s.parseDay(employeeID, date)
	if err != nil {
		return DailySummaryResponse{}, err
	}

	v, err, _ := s.group.Do(employeeID+"|"+date, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedWorkTimeout)
		defer cancel()

		stored, err := s.repo.FindSummary(ctx, employeeID, civilDate(day))
		if err == nil {
			return toDailyResponse(*stored), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mapRepositoryError(err)
		}
		return s.recalculate(ctx, employeeID, day)
	})
	if err != nil {
		s.logger.Error("daily summary failed",
			zap.String("employee_id", employeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return DailySummaryResponse{}, err
	}
	return v.(DailySummaryResponse), nil
}

func (s *service) Recalculate(ctx context.Context, employeeID, date string) (DailySummaryResponse, error) {
	day, err := s.parseDay(employeeID, date)
	if err != nil {
		return DailySummaryResponse{}, err
	}
	return s.recalculate(ctx, employeeID, day)
}

// RecalculateForSession refreshes the business day a session started on.
func (s *service) RecalculateForSession(ctx context.Context, employeeID string, startTime time.Time) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return sessionerrors.ErrInvalidEmployeeID
	}
	local := startTime.In(s.loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	_, err := s.recalculate(ctx, employeeID, day)
	return err
}

func (s *service) recalculate(ctx context.Context, employeeID string, day time.Time) (DailySummaryResponse, error) {
	sessions, err := s.repo.FindClosedSessions(ctx, employeeID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return DailySummaryResponse{}, mapRepositoryError(err)
	}

	summary := &DailyWorkSummary{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		WorkDate:   civilDate(day),
	}
	summary.TotalMinutes, summary.Sessions = summarize(sessions)

	if err := s.repo.Upsert(ctx, summary); err != nil {
		return DailySummaryResponse{}, mapRepositoryError(err)
	}

	s.logger.Debug("daily summary recalculated",
		zap.String("employee_id", employeeID),
		zap.String("date", day.Format(dateLayout)),
		zap.Int("total_minutes", summary.TotalMinutes),
	)
	return toDailyResponse(*summary), nil
}

// RangeSummary merges stored days with days computed from closed sessions
// when no row exists yet. Days without work are omitted. Newest first.
func (s *service) RangeSummary(ctx context.Context, employeeID, startDate, endDate string) (RangeSummaryResponse, error) {
	start, err := s.parseDay(employeeID, startDate)
	if err != nil {
		return RangeSummaryResponse{}, err
	}
	end, err := s.parseDay(employeeID, endDate)
	if err != nil {
		return RangeSummaryResponse{}, err
	}
	if start.After(end) {
		return RangeSummaryResponse{}, reporterrors.ErrInvalidRange
	}
	if daysBetween(start, end)+1 > maxRangeDays {
		return RangeSummaryResponse{}, reporterrors.ErrRangeTooLong
	}

	stored, err := s.repo.FindSummaries(ctx, employeeID, civilDate(start), civilDate(end))
	if err != nil {
		return RangeSummaryResponse{}, mapRepositoryError(err)
	}
	byDay := make(map[string]DayTotal, len(stored))
	for _, row := range stored {
		d := row.WorkDate.Format(dateLayout)
		byDay[d] = dayTotal(d, row.TotalMinutes, len(row.Sessions))
	}

	sessions, err := s.repo.FindClosedSessions(ctx, employeeID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return RangeSummaryResponse{}, mapRepositoryError(err)
	}
	computed := make(map[string][]session.TrackingSession)
	for _, ts := range sessions {
		d := ts.StartTime.In(s.loc).Format(dateLayout)
		computed[d] = append(computed[d], ts)
	}

	resp := RangeSummaryResponse{
		StartDate:      start.Format(dateLayout),
		EndDate:        end.Format(dateLayout),
		DailySummaries: []DayTotal{},
	}
	for day := end; !day.Before(start); day = day.AddDate(0, 0, -1) {
		d := day.Format(dateLayout)
		total, ok := byDay[d]
		if !ok {
			rows, has := computed[d]
			if !has {
				continue
			}
			minutes, list := summarize(rows)
			total = dayTotal(d, minutes, len(list))
		}
		resp.TotalMinutes += total.TotalMinutes
		resp.DailySummaries = append(resp.DailySummaries, total)
	}
	resp.TotalHours = hours(resp.TotalMinutes)
	return resp, nil
}

func (s *service) parseDay(employeeID, date string) (time.Time, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return time.Time{}, sessionerrors.ErrInvalidEmployeeID
	}
	if date == "" {
		return time.Time{}, reporterrors.ErrDateRequired
	}
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, reporterrors.ErrInvalidDate
	}
	return day, nil
}

func summarize(sessions []session.TrackingSession) (int, SessionSummaries) {
	total := 0
	list := make(SessionSummaries, 0, len(sessions))
	for _, ts := range sessions {
		total += ts.DurationMinutes
		list = append(list, SessionSummary{
			SessionID: ts.ID.String(),
			StartTime: ts.StartTime,
			EndTime:   ts.EndTime,
			Duration:  ts.DurationMinutes,
			Status:    ts.Status,
		})
	}
	return total, list
}

// civilDate maps a local midnight onto the UTC midnight stored in date
// columns.
func civilDate(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(civilDate(b).Sub(civilDate(a)).Hours() / 24)
}

func hours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

func dayTotal(date string, minutes, count int) DayTotal {
	return DayTotal{
		Date:         date,
		TotalMinutes: minutes,
		TotalHours:   hours(minutes),
		SessionCount: count,
	}
}

func toDailyResponse(s DailyWorkSummary) DailySummaryResponse {
	sessions := []SessionSummary(s.Sessions)
	if sessions == nil {
		sessions = []SessionSummary{}
	}
	return DailySummaryResponse{
		Date:         s.WorkDate.Format(dateLayout),
		TotalMinutes: s.TotalMinutes,
		TotalHours:   hours(s.TotalMinutes),
		Sessions:     sessions,
	}
}

func mapRepositoryError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if dberror.IsUnavailable(err) {
		return apperror.ErrStorageUnavailable.WithCause(err)
	}
	return err
}
