package dashboard

type StatsResponse struct {
	TotalEmployees  int64 `json:"totalEmployees"`
	ActiveEmployees int64 `json:"activeEmployees"`
	TotalSessions   int64 `json:"totalSessions"`
	ActiveSessions  int64 `json:"activeSessions"`
}
