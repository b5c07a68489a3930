package employee

import (
	"context"
	"database/sql"
	"go-tracking/internal/shared/connection"
	"strings"

	"gorm.io/gorm"
)

type ListFilter struct {
	Search string
	Active *bool
	Offset int
	Limit  int
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	UpdateStatus(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db
	if r.tx != nil {
		db = connection.BindTx(r.db, r.tx)
	}
	return db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	q := r.conn(ctx).Model(&Employee{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_number) LIKE ?", like, like, like)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Employee
	err := q.Order("full_name ASC").Offset(filter.Offset).Limit(filter.Limit).Find(&rows).Error
	return rows, total, err
}

// FindOptions lists active employees for pickers.
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.conn(ctx).
		Select("id", "employee_number", "full_name").
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	if err := r.conn(ctx).Where("id = ?", id).Take(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id string, active bool) error {
	res := r.conn(ctx).Model(&Employee{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Where("id = ?", id).Delete(&Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
