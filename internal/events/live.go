package events

import "time"

// Live message types pushed to dashboard viewers.
const (
	TypeLocationUpdate = "location:update"
	TypeSessionUpdate  = "session:update"
	TypeSnapshot       = "snapshot"
	TypePing           = "ping"
	TypePong           = "pong"
)

type LocationUpdate struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	SessionID    string    `json:"sessionId"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Accuracy     float64   `json:"accuracy"`
	BatteryLevel *float64  `json:"batteryLevel,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type SessionUpdate struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	SessionID    string    `json:"sessionId"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// Envelope is the frame written to websocket clients.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// SnapshotEntry is one ON session with its latest known position.
type SnapshotEntry struct {
	Employee     SnapshotEmployee `json:"employee"`
	Session      SnapshotSession  `json:"session"`
	Location     Coordinates      `json:"location"`
	Accuracy     float64          `json:"accuracy"`
	BatteryLevel *float64         `json:"batteryLevel,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

type SnapshotEmployee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SnapshotSession struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	Status    string    `json:"status"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
