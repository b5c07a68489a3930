package session

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOn      = "ON"
	StatusOff     = "OFF"
	StatusAutoOff = "AUTO_OFF"
)

// ActiveSessionIndex is the partial unique index that allows at most one ON
// session per employee.
const ActiveSessionIndex = "uq_tracking_sessions_active_employee"

type TrackingSession struct {
	ID              uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID      uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;index:idx_tracking_sessions_employee_start,priority:1"`
	Status          string       `gorm:"column:status;type:varchar(10);not null;index"`
	StartTime       time.Time    `gorm:"column:start_time;type:timestamptz;not null;index:idx_tracking_sessions_employee_start,priority:2,sort:desc"`
	EndTime         *time.Time   `gorm:"column:end_time;type:timestamptz"`
	StartLatitude   float64      `gorm:"column:start_latitude;not null"`
	StartLongitude  float64      `gorm:"column:start_longitude;not null"`
	EndLatitude     *float64     `gorm:"column:end_latitude"`
	EndLongitude    *float64     `gorm:"column:end_longitude"`
	DurationMinutes int          `gorm:"column:duration_minutes;not null;default:0"`
	CreatedAt       time.Time    `gorm:"column:created_at"`
	UpdatedAt       time.Time    `gorm:"column:updated_at"`
	Employee        *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (TrackingSession) TableName() string {
	return "tracking_sessions"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// Close moves an ON session into a terminal status at end.
func (s *TrackingSession) Close(end time.Time, status string, lat, lon *float64) {
	s.Status = status
	s.EndTime = &end
	s.EndLatitude = lat
	s.EndLongitude = lon
	s.DurationMinutes = DurationMinutes(s.StartTime, end)
}

func (s *TrackingSession) EmployeeName() string {
	if s.Employee == nil {
		return ""
	}
	return s.Employee.FullName
}

// DurationMinutes is floor((end-start)/1m), never negative.
func DurationMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
