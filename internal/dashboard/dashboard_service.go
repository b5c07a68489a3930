package dashboard

import (
	"context"
	"errors"

	"go-tracking/internal/session"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/dberror"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{repo: repo, logger: l}
}

// Stats runs the four counts concurrently; dashboards polling at once share
// a single round.
func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	v, err, _ := s.group.Do("stats", func() (any, error) {
		var resp StatsResponse
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			resp.TotalEmployees, err = s.repo.CountEmployees(gctx)
			return err
		})
		g.Go(func() (err error) {
			resp.ActiveEmployees, err = s.repo.CountTrackingEmployees(gctx)
			return err
		})
		g.Go(func() (err error) {
			resp.TotalSessions, err = s.repo.CountSessions(gctx, "")
			return err
		})
		g.Go(func() (err error) {
			resp.ActiveSessions, err = s.repo.CountSessions(gctx, session.StatusOn)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("dashboard stats failed", zap.Error(err))
		return StatsResponse{}, mapRepositoryError(err)
	}
	return v.(StatsResponse), nil
}

func mapRepositoryError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if dberror.IsUnavailable(err) {
		return apperror.ErrStorageUnavailable.WithCause(err)
	}
	return err
}
