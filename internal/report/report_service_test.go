package report_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-tracking/internal/report"
	"go-tracking/internal/report/mock"
	"go-tracking/internal/session"
	"go-tracking/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var dhaka = mustLoad("Asia/Dhaka")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// memRepo keeps summaries in memory and serves a fixed session list.
type memRepo struct {
	mu        sync.Mutex
	summaries map[string]report.DailyWorkSummary
	sessions  []session.TrackingSession
	upserts   int
	queries   [][2]time.Time
}

func newMemRepo(sessions ...session.TrackingSession) *memRepo {
	return &memRepo{summaries: map[string]report.DailyWorkSummary{}, sessions: sessions}
}

func key(employeeID string, d time.Time) string { return employeeID + d.Format("2006-01-02") }

func (m *memRepo) FindSummary(ctx context.Context, employeeID string, workDate time.Time) (*report.DailyWorkSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.summaries[key(employeeID, workDate)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memRepo) FindSummaries(ctx context.Context, employeeID string, from, to time.Time) ([]report.DailyWorkSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []report.DailyWorkSummary
	for _, s := range m.summaries {
		if s.EmployeeID.String() == employeeID && !s.WorkDate.Before(from) && !s.WorkDate.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memRepo) Upsert(ctx context.Context, s *report.DailyWorkSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.summaries[key(s.EmployeeID.String(), s.WorkDate)] = *s
	return nil
}

func (m *memRepo) FindClosedSessions(ctx context.Context, employeeID string, from, to time.Time) ([]session.TrackingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, [2]time.Time{from, to})
	var out []session.TrackingSession
	for _, s := range m.sessions {
		if s.EmployeeID.String() == employeeID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func closed(employeeID uuid.UUID, start time.Time, minutes int, status string) session.TrackingSession {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return session.TrackingSession{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Status:          status,
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: minutes,
	}
}

func TestDailySummary_ComputesThenServesStored(t *testing.T) {
	employeeID := uuid.New()
	repo := newMemRepo(
		closed(employeeID, time.Date(2026, 3, 2, 9, 0, 0, 0, dhaka), 90, session.StatusOff),
		closed(employeeID, time.Date(2026, 3, 2, 14, 0, 0, 0, dhaka), 60, session.StatusAutoOff),
		// 23:30 on March 1 belongs to the previous day.
		closed(employeeID, time.Date(2026, 3, 1, 23, 30, 0, 0, dhaka), 20, session.StatusOff),
	)
	svc := report.NewService(repo, dhaka)

	first, err := svc.DailySummary(context.Background(), employeeID.String(), "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", first.Date)
	assert.Equal(t, 150, first.TotalMinutes)
	assert.Equal(t, 2.5, first.TotalHours)
	assert.Len(t, first.Sessions, 2)

	require.Len(t, repo.queries, 1)
	assert.True(t, time.Date(2026, 3, 2, 0, 0, 0, 0, dhaka).Equal(repo.queries[0][0]))
	assert.True(t, time.Date(2026, 3, 3, 0, 0, 0, 0, dhaka).Equal(repo.queries[0][1]))

	second, err := svc.DailySummary(context.Background(), employeeID.String(), "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, first.TotalMinutes, second.TotalMinutes)
	assert.Equal(t, first.TotalHours, second.TotalHours)
	assert.Len(t, second.Sessions, 2)
	assert.Equal(t, 1, repo.upserts, "second read is served from the stored row")
}

func TestRecalculate_IsIdempotent(t *testing.T) {
	employeeID := uuid.New()
	repo := newMemRepo(closed(employeeID, time.Date(2026, 3, 2, 9, 0, 0, 0, dhaka), 45, session.StatusOff))
	svc := report.NewService(repo, dhaka)

	a, err := svc.Recalculate(context.Background(), employeeID.String(), "2026-03-02")
	require.NoError(t, err)
	b, err := svc.Recalculate(context.Background(), employeeID.String(), "2026-03-02")
	require.NoError(t, err)

	assert.Equal(t, a.TotalMinutes, b.TotalMinutes)
	assert.Len(t, repo.summaries, 1)
}

func TestRecalculateForSession_UsesBusinessDay(t *testing.T) {
	employeeID := uuid.New()
	// 20:00 UTC on March 1 is 02:00 on March 2 in Dhaka.
	start := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	repo := newMemRepo(closed(employeeID, start, 30, session.StatusAutoOff))
	svc := report.NewService(repo, dhaka)

	require.NoError(t, svc.RecalculateForSession(context.Background(), employeeID.String(), start))

	stored, err := repo.FindSummary(context.Background(), employeeID.String(), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 30, stored.TotalMinutes)
}

func TestRangeSummary_MergesStoredAndComputed(t *testing.T) {
	employeeID := uuid.New()
	repo := newMemRepo(
		closed(employeeID, time.Date(2026, 3, 1, 10, 0, 0, 0, dhaka), 60, session.StatusOff),
		closed(employeeID, time.Date(2026, 3, 3, 10, 0, 0, 0, dhaka), 30, session.StatusOff),
	)
	repo.summaries[key(employeeID.String(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))] = report.DailyWorkSummary{
		EmployeeID:   employeeID,
		WorkDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalMinutes: 60,
		Sessions:     report.SessionSummaries{{SessionID: "s-1", Duration: 60}},
	}
	svc := report.NewService(repo, dhaka)

	resp, err := svc.RangeSummary(context.Background(), employeeID.String(), "2026-03-01", "2026-03-04")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", resp.StartDate)
	assert.Equal(t, "2026-03-04", resp.EndDate)
	assert.Equal(t, 90, resp.TotalMinutes)
	assert.Equal(t, 1.5, resp.TotalHours)
	require.Len(t, resp.DailySummaries, 2)
	assert.Equal(t, "2026-03-03", resp.DailySummaries[0].Date, "newest first")
	assert.Equal(t, 1, resp.DailySummaries[0].SessionCount)
	assert.Equal(t, "2026-03-01", resp.DailySummaries[1].Date)
	assert.Zero(t, repo.upserts, "range reads never write")
}

func TestRangeSummary_Validation(t *testing.T) {
	svc := report.NewService(newMemRepo(), dhaka)
	employeeID := uuid.NewString()

	tests := []struct {
		name       string
		start, end string
	}{
		{"start after end", "2026-03-05", "2026-03-01"},
		{"longer than 92 days", "2026-01-01", "2026-04-30"},
		{"bad format", "2026/01/01", "2026-01-02"},
		{"missing end", "2026-01-01", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RangeSummary(context.Background(), employeeID, tt.start, tt.end)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperror.ToHTTP(err).Status)
		})
	}

	_, err := svc.RangeSummary(context.Background(), employeeID, "2026-01-01", "2026-04-02")
	assert.NoError(t, err, "exactly 92 days is allowed")
}

func TestDailySummary_StorageUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().FindSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

	svc := report.NewService(repo, dhaka)
	_, err := svc.DailySummary(context.Background(), uuid.NewString(), "2026-03-02")

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.ToHTTP(err).Status)
}

func TestDailySummary_UpsertErrorReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	repo.EXPECT().FindSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().FindClosedSessions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("constraint"))

	svc := report.NewService(repo, dhaka)
	_, err := svc.DailySummary(context.Background(), uuid.NewString(), "2026-03-02")

	assert.Error(t, err)
}

// cancelAwareRepo fails like the database driver does once ctx is cancelled.
type cancelAwareRepo struct {
	*memRepo
	entered chan struct{}
	release chan struct{}
}

func (r *cancelAwareRepo) FindSummary(ctx context.Context, employeeID string, workDate time.Time) (*report.DailyWorkSummary, error) {
	close(r.entered)
	<-r.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.memRepo.FindSummary(ctx, employeeID, workDate)
}

func TestDailySummary_SharedWorkIgnoresCallerCancel(t *testing.T) {
	employeeID := uuid.New()
	repo := &cancelAwareRepo{
		memRepo: newMemRepo(closed(employeeID, time.Date(2026, 3, 2, 9, 0, 0, 0, dhaka), 30, session.StatusOff)),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := report.NewService(repo, dhaka)

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		resp report.DailySummaryResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := svc.DailySummary(ctx, employeeID.String(), "2026-03-02")
		done <- result{resp, err}
	}()

	<-repo.entered
	cancel()
	close(repo.release)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, 30, res.resp.TotalMinutes)
	case <-time.After(time.Second):
		t.Fatal("daily summary did not return")
	}
}
