package report

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const SummaryUniqueConstraint = "uq_daily_work_summary_employee_date"

type SessionSummary struct {
	SessionID string     `json:"sessionId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int        `json:"duration"`
	Status    string     `json:"status"`
}

// SessionSummaries is stored as a jsonb array.
type SessionSummaries []SessionSummary

func (s SessionSummaries) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func (s *SessionSummaries) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = SessionSummaries{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("sessions: unsupported column type")
	}
	return json.Unmarshal(raw, s)
}

// DailyWorkSummary caches one employee's closed-session minutes for one
// business day. WorkDate carries the civil date at UTC midnight.
type DailyWorkSummary struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID        `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_daily_work_summary_employee_date,priority:1"`
	WorkDate     time.Time        `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_daily_work_summary_employee_date,priority:2"`
	TotalMinutes int              `gorm:"column:total_minutes;not null;default:0"`
	Sessions     SessionSummaries `gorm:"column:sessions;type:jsonb;not null"`
	CreatedAt    time.Time        `gorm:"column:created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at"`
}

func (DailyWorkSummary) TableName() string {
	return "daily_work_summaries"
}
