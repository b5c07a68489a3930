package location

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const insertBatchSize = 50

// HistoryFilter bounds a history read. From is inclusive, To exclusive.
type HistoryFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, sample *LocationSample) error
	CreateBatch(ctx context.Context, samples []LocationSample) error
	FindLatestBySession(ctx context.Context, sessionID string) (*LocationSample, error)
	FindHistory(ctx context.Context, employeeID string, filter HistoryFilter) ([]LocationSample, error)
	DeleteReceivedBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sample *LocationSample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *repository) CreateBatch(ctx context.Context, samples []LocationSample) error {
	if len(samples) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(samples, insertBatchSize).Error
}

// FindLatestBySession orders by device timestamp and breaks ties with the
// server receive time.
func (r *repository) FindLatestBySession(ctx context.Context, sessionID string) (*LocationSample, error) {
	var sample LocationSample
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC").
		Order("received_at DESC").
		Take(&sample).Error
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *repository) FindHistory(ctx context.Context, employeeID string, filter HistoryFilter) ([]LocationSample, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if filter.From != nil {
		q = q.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("timestamp < ?", *filter.To)
	}

	var samples []LocationSample
	err := q.Order("timestamp DESC").Limit(filter.Limit).Find(&samples).Error
	return samples, err
}

// DeleteReceivedBefore removes at most limit samples per call so a purge
// never holds a long lock on the table.
func (r *repository) DeleteReceivedBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		DELETE FROM location_samples
		WHERE id IN (
			SELECT id FROM location_samples
			WHERE received_at < ?
			ORDER BY received_at
			LIMIT ?
		)`, cutoff, limit)
	return res.RowsAffected, res.Error
}
