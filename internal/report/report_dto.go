package report

type DailySummaryResponse struct {
	Date         string           `json:"date"`
	TotalMinutes int              `json:"totalMinutes"`
	TotalHours   float64          `json:"totalHours"`
	Sessions     []SessionSummary `json:"sessions"`
}

type DayTotal struct {
	Date         string  `json:"date"`
	TotalMinutes int     `json:"totalMinutes"`
	TotalHours   float64 `json:"totalHours"`
	SessionCount int     `json:"sessionCount"`
}

type RangeSummaryResponse struct {
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	TotalMinutes   int        `json:"totalMinutes"`
	TotalHours     float64    `json:"totalHours"`
	DailySummaries []DayTotal `json:"dailySummaries"`
}

type RangeQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}
