package report

import (
	"context"
	"go-tracking/internal/session"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	FindSummary(ctx context.Context, employeeID string, workDate time.Time) (*DailyWorkSummary, error)
	FindSummaries(ctx context.Context, employeeID string, from, to time.Time) ([]DailyWorkSummary, error)
	Upsert(ctx context.Context, summary *DailyWorkSummary) error
	FindClosedSessions(ctx context.Context, employeeID string, from, to time.Time) ([]session.TrackingSession, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindSummary(ctx context.Context, employeeID string, workDate time.Time) (*DailyWorkSummary, error) {
	var s DailyWorkSummary
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, workDate).
		Take(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindSummaries returns stored days in [from, to], newest first.
func (r *repository) FindSummaries(ctx context.Context, employeeID string, from, to time.Time) ([]DailyWorkSummary, error) {
	var rows []DailyWorkSummary
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND work_date BETWEEN ? AND ?", employeeID, from, to).
		Order("work_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Upsert(ctx context.Context, summary *DailyWorkSummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "work_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_minutes", "sessions", "updated_at"}),
	}).Create(summary).Error
}

// FindClosedSessions lists OFF and AUTO_OFF sessions that started in
// [from, to).
func (r *repository) FindClosedSessions(ctx context.Context, employeeID string, from, to time.Time) ([]session.TrackingSession, error) {
	var rows []session.TrackingSession
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			employeeID, []string{session.StatusOff, session.StatusAutoOff}, from, to).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, err
}
