package report_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-tracking/internal/report"
	"go-tracking/internal/report/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_Daily(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	svc.EXPECT().DailySummary(gomock.Any(), "emp-1", "2026-03-02").
		Return(report.DailySummaryResponse{Date: "2026-03-02", TotalMinutes: 90, TotalHours: 1.5}, nil)

	h := report.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "employeeId", Value: "emp-1"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/daily/emp-1?date=2026-03-02", nil)
	h.Daily(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalHours":1.5`)
}

func TestHandler_Range_MissingDates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	h := report.NewHandler(mock.NewMockService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "employeeId", Value: "emp-1"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/reports/range/emp-1?startDate=2026-03-01", nil)
	h.Range(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
