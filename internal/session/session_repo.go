package session

import (
	"context"
	"database/sql"
	"go-tracking/internal/shared/connection"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=session_repo.go -destination=mock/session_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *TrackingSession) error
	FindActiveByEmployee(ctx context.Context, employeeID string) (*TrackingSession, error)
	LockActiveByEmployee(ctx context.Context, employeeID string) (*TrackingSession, error)
	FindAllActive(ctx context.Context) ([]TrackingSession, error)
	Close(ctx context.Context, s *TrackingSession) error
	MarkAutoOff(ctx context.Context, cutoff time.Time) ([]TrackingSession, error)
	FindByEmployee(ctx context.Context, employeeID string, limit int) ([]TrackingSession, error)
	FindEmployeeName(ctx context.Context, employeeID string) (string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db
	if r.tx != nil {
		db = connection.BindTx(r.db, r.tx)
	}
	return db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, s *TrackingSession) error {
	return r.conn(ctx).Omit("Employee").Create(s).Error
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) (*TrackingSession, error) {
	var s TrackingSession
	err := r.conn(ctx).
		Preload("Employee").
		Where("employee_id = ? AND status = ?", employeeID, StatusOn).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LockActiveByEmployee reads the ON session with FOR UPDATE. Only meaningful
// inside a transaction.
func (r *repository) LockActiveByEmployee(ctx context.Context, employeeID string) (*TrackingSession, error) {
	var s TrackingSession
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND status = ?", employeeID, StatusOn).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindAllActive(ctx context.Context) ([]TrackingSession, error) {
	var rows []TrackingSession
	err := r.conn(ctx).
		Preload("Employee").
		Where("status = ?", StatusOn).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, err
}

// Close persists a transition out of ON. Returns gorm.ErrRecordNotFound when
// the row is no longer ON.
func (r *repository) Close(ctx context.Context, s *TrackingSession) error {
	res := r.conn(ctx).
		Model(&TrackingSession{}).
		Where("id = ? AND status = ?", s.ID, StatusOn).
		Updates(map[string]any{
			"status":           s.Status,
			"end_time":         s.EndTime,
			"end_latitude":     s.EndLatitude,
			"end_longitude":    s.EndLongitude,
			"duration_minutes": s.DurationMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

const markAutoOffSQL = `
UPDATE tracking_sessions
SET
	status = ?,
	end_time = ?,
	duration_minutes = GREATEST(FLOOR(EXTRACT(EPOCH FROM (?::timestamptz - start_time)) / 60), 0)::int,
	updated_at = NOW()
WHERE status = ? AND start_time < ?
RETURNING id, employee_id, status, start_time, end_time, start_latitude, start_longitude,
	end_latitude, end_longitude, duration_minutes, created_at, updated_at,
	COALESCE((SELECT e.full_name FROM employees e WHERE e.id = tracking_sessions.employee_id), '') AS employee_name
`

type autoOffRow struct {
	ID              uuid.UUID
	EmployeeID      uuid.UUID
	Status          string
	StartTime       time.Time
	EndTime         *time.Time
	StartLatitude   float64
	StartLongitude  float64
	EndLatitude     *float64
	EndLongitude    *float64
	DurationMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	EmployeeName    string
}

// MarkAutoOff closes every ON session that started before cutoff in one
// statement and returns the closed rows with the employee name attached.
// Sessions of deleted employees are closed too, with an empty name.
func (r *repository) MarkAutoOff(ctx context.Context, cutoff time.Time) ([]TrackingSession, error) {
	var rows []autoOffRow
	err := r.conn(ctx).
		Raw(markAutoOffSQL, StatusAutoOff, cutoff, cutoff, StatusOn, cutoff).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	closed := make([]TrackingSession, 0, len(rows))
	for _, row := range rows {
		closed = append(closed, TrackingSession{
			ID:              row.ID,
			EmployeeID:      row.EmployeeID,
			Status:          row.Status,
			StartTime:       row.StartTime,
			EndTime:         row.EndTime,
			StartLatitude:   row.StartLatitude,
			StartLongitude:  row.StartLongitude,
			EndLatitude:     row.EndLatitude,
			EndLongitude:    row.EndLongitude,
			DurationMinutes: row.DurationMinutes,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
			Employee:        &EmployeeRef{ID: row.EmployeeID, FullName: row.EmployeeName},
		})
	}
	return closed, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, limit int) ([]TrackingSession, error) {
	var rows []TrackingSession
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_time DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEmployeeName(ctx context.Context, employeeID string) (string, error) {
	var name string
	err := r.conn(ctx).
		Raw("SELECT full_name FROM employees WHERE id = ? AND deleted_at IS NULL", employeeID).
		Scan(&name).Error
	return name, err
}
