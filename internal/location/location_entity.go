package location

import (
	"go-tracking/internal/geo"
	"time"

	"github.com/google/uuid"
)

// LocationSample is immutable once written. Timestamp is the device clock,
// ReceivedAt the server clock used by retention.
type LocationSample struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_location_samples_employee_ts,priority:1"`
	SessionID    uuid.UUID `gorm:"column:session_id;type:uuid;not null;index:idx_location_samples_session_ts,priority:1"`
	Latitude     float64   `gorm:"column:latitude;not null;check:chk_location_samples_latitude,latitude >= -90 AND latitude <= 90"`
	Longitude    float64   `gorm:"column:longitude;not null;check:chk_location_samples_longitude,longitude >= -180 AND longitude <= 180"`
	Accuracy     float64   `gorm:"column:accuracy;not null;default:0;check:chk_location_samples_accuracy,accuracy >= 0"`
	BatteryLevel *float64  `gorm:"column:battery_level;check:chk_location_samples_battery,battery_level IS NULL OR (battery_level >= 0 AND battery_level <= 100)"`
	Timestamp    time.Time `gorm:"column:timestamp;type:timestamptz;not null;index:idx_location_samples_session_ts,priority:2,sort:desc;index:idx_location_samples_employee_ts,priority:2,sort:desc"`
	ReceivedAt   time.Time `gorm:"column:received_at;type:timestamptz;not null;index:idx_location_samples_received_at"`
}

func (LocationSample) TableName() string {
	return "location_samples"
}

func (l LocationSample) filterSample() *geo.Sample {
	return &geo.Sample{
		Point:     geo.Point{Latitude: l.Latitude, Longitude: l.Longitude},
		Timestamp: l.Timestamp,
	}
}
