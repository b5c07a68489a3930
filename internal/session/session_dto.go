package session

import "time"

type StartSessionRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	// AutoClose defaults to true; false refuses to replace an ON session.
	AutoClose *bool `json:"autoClose"`
}

type StopSessionRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

type StartSessionResponse struct {
	SessionID string    `json:"sessionId"`
	StartTime time.Time `json:"startTime"`
	Status    string    `json:"status"`
}

type StopSessionResponse struct {
	SessionID string    `json:"sessionId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"`
	Status    string    `json:"status"`
}

type SessionResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	EmployeeName   string     `json:"employeeName,omitempty"`
	Status         string     `json:"status"`
	StartTime      time.Time  `json:"startTime"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	StartLatitude  float64    `json:"startLatitude"`
	StartLongitude float64    `json:"startLongitude"`
	EndLatitude    *float64   `json:"endLatitude,omitempty"`
	EndLongitude   *float64   `json:"endLongitude,omitempty"`
	Duration       int        `json:"duration"`
}

type StatusResponse struct {
	Active  bool             `json:"active"`
	Session *SessionResponse `json:"session,omitempty"`
}
