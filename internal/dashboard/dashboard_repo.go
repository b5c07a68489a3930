package dashboard

import (
	"context"

	"go-tracking/internal/employee"
	"go-tracking/internal/session"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountEmployees(ctx context.Context) (int64, error)
	// CountSessions counts every session when status is empty.
	CountSessions(ctx context.Context, status string) (int64, error)
	CountTrackingEmployees(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&employee.Employee{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *repository) CountSessions(ctx context.Context, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&session.TrackingSession{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// CountTrackingEmployees counts distinct employees with an ON session.
func (r *repository) CountTrackingEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&session.TrackingSession{}).
		Where("status = ?", session.StatusOn).
		Distinct("employee_id").
		Count(&n).Error
	return n, err
}
