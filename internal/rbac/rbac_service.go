package rbac

import (
	"fmt"
	"go-tracking/internal/domain"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
	PermissionsForRole(role string) (domain.RolePermissionsResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	labels   map[string]string
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the policy once; Enforce only reads afterwards.
func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	s := &service{repo: repo, enforcer: enforcer, logger: l}
	if err := s.LoadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) LoadPolicy() error {
	rows, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	s.labels = make(map[string]string, len(rows))
	for _, rp := range rows {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return fmt.Errorf("add policy %s %s:%s: %w", rp.Role, rp.Resource, rp.Action, err)
		}
		s.labels[policyKey(rp.Role, rp.Resource, rp.Action)] = rp.Label
	}

	s.logger.Info("rbac policy loaded", zap.Int("rules", len(rows)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) PermissionsForRole(role string) (domain.RolePermissionsResponse, error) {
	role = strings.ToUpper(strings.TrimSpace(role))

	s.mu.RLock()
	defer s.mu.RUnlock()

	policies, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return domain.RolePermissionsResponse{}, err
	}

	perms := make([]domain.PermissionResponse, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		perms = append(perms, domain.PermissionResponse{
			Resource: p[1],
			Action:   p[2],
			Label:    s.labels[policyKey(p[0], p[1], p[2])],
		})
	}
	return domain.RolePermissionsResponse{Role: role, Permissions: perms}, nil
}

func policyKey(role, resource, action string) string {
	return role + "|" + resource + "|" + action
}
