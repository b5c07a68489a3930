package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-tracking/internal/employee/errors"
	"go-tracking/internal/shared/contextutil"
	"go-tracking/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	OptionsCacheKey = "employees:options"
	optionsCacheTTL = time.Hour

	defaultPageSize = 20
	maxPageSize     = 100
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, q ListQuery) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateStatus(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      singleflight.Group
	logger  *zap.Logger
}

// NewService accepts a nil rdb; options are then read straight from the
// database.
func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		rdb:     rdb,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	number := strings.TrimSpace(req.EmployeeNumber)
	if number == "" {
		next, err := s.counter.GetNextValue(ctx, counter.TypeEmployeeNumber)
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		number = fmt.Sprintf("EMP-%06d", next)
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: number,
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		IsActive:       true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	s.invalidateOptions(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)
	return mapToResponse(*empl), nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]EmployeeResponse, int64, error) {
	page, size := normalizePage(q.Page, q.PageSize)
	filter := ListFilter{
		Search: q.Search,
		Offset: (page - 1) * size,
		Limit:  size,
	}
	switch q.Status {
	case "active":
		active := true
		filter.Active = &active
	case "inactive":
		active := false
		filter.Active = &active
	}

	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(rows), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (any, error) {
		rows, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		resp := make([]EmployeeOption, len(rows))
		for i, e := range rows {
			resp[i] = EmployeeOption{ID: e.ID.String(), EmployeeNumber: e.EmployeeNumber, FullName: e.FullName}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, OptionsCacheKey, data, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("employee options cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}
	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FullName = strings.TrimSpace(req.FullName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Phone = req.Phone
	if n := strings.TrimSpace(req.EmployeeNumber); n != "" {
		empl.EmployeeNumber = n
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	s.invalidateOptions(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

// UpdateStatus toggles is_active. Inactive employees stay listable but drop
// out of the options list.
func (s *service) UpdateStatus(ctx context.Context, id string, active bool) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if err := s.repo.UpdateStatus(ctx, id, active); err != nil {
		s.logger.Warn("update employee status failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	s.invalidateOptions(ctx)

	meta := contextutil.ExtractMetadata(ctx)
	s.logger.Info("update employee status success",
		zap.String("request_id", meta.RequestID),
		zap.String("actor_user_id", meta.UserID),
		zap.String("employee_id", id),
		zap.Bool("is_active", active),
	)
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	s.invalidateOptions(ctx)

	meta := contextutil.ExtractMetadata(ctx)
	s.logger.Info("delete employee success",
		zap.String("request_id", meta.RequestID),
		zap.String("actor_user_id", meta.UserID),
		zap.String("employee_id", id),
	)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.String("key", OptionsCacheKey),
			zap.Error(err),
		)
	}
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
	}
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}
