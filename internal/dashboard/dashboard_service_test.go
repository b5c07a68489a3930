package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-tracking/internal/dashboard"
	"go-tracking/internal/dashboard/mock"
	"go-tracking/internal/session"
	"go-tracking/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().CountEmployees(gomock.Any()).Return(int64(12), nil)
	repo.EXPECT().CountTrackingEmployees(gomock.Any()).Return(int64(4), nil)
	repo.EXPECT().CountSessions(gomock.Any(), "").Return(int64(300), nil)
	repo.EXPECT().CountSessions(gomock.Any(), session.StatusOn).Return(int64(4), nil)

	resp, err := dashboard.NewService(repo).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dashboard.StatsResponse{TotalEmployees: 12, ActiveEmployees: 4, TotalSessions: 300, ActiveSessions: 4}, resp)
}

func TestService_StatsStorageUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().CountEmployees(gomock.Any()).Return(int64(0), context.DeadlineExceeded)
	repo.EXPECT().CountTrackingEmployees(gomock.Any()).Return(int64(0), nil).AnyTimes()
	repo.EXPECT().CountSessions(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	_, err := dashboard.NewService(repo).Stats(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.ToHTTP(err).Status)
}

type fakeService struct {
	fn func(ctx context.Context) (dashboard.StatsResponse, error)
}

func (f fakeService) Stats(ctx context.Context) (dashboard.StatsResponse, error) { return f.fn(ctx) }

func TestHandler_Stats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	dashboard.NewHandler(fakeService{fn: func(context.Context) (dashboard.StatsResponse, error) {
		return dashboard.StatsResponse{TotalEmployees: 3}, nil
	}}).Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalEmployees":3`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	dashboard.NewHandler(fakeService{fn: func(context.Context) (dashboard.StatsResponse, error) {
		return dashboard.StatsResponse{}, errors.New("boom")
	}}).Stats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
