package location

import "time"

type SampleRequest struct {
	Latitude     *float64  `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude    *float64  `json:"longitude" binding:"required,gte=-180,lte=180"`
	Accuracy     float64   `json:"accuracy" binding:"gte=0"`
	BatteryLevel *float64  `json:"batteryLevel" binding:"omitempty,gte=0,lte=100"`
	Timestamp    time.Time `json:"timestamp" binding:"required"`
}

type BatchRequest struct {
	Locations []SampleRequest `json:"locations" binding:"required,min=1,max=50,dive"`
}

type TrackResponse struct {
	Saved      bool       `json:"saved"`
	LocationID string     `json:"locationId,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

type BatchResponse struct {
	Saved int `json:"saved"`
	Total int `json:"total"`
}

type HistoryQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Limit     int    `form:"limit"`
}

type LocationResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	SessionID    string    `json:"sessionId"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Accuracy     float64   `json:"accuracy"`
	BatteryLevel *float64  `json:"batteryLevel,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	ReceivedAt   time.Time `json:"receivedAt"`
}
