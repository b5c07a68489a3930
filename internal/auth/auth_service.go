package auth

import (
	"context"
	"errors"
	"strings"

	autherrors "go-tracking/internal/auth/errors"
	"go-tracking/internal/domain"
	"go-tracking/internal/employee"
	employeeerrors "go-tracking/internal/employee/errors"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/dberror"
	"go-tracking/internal/shared/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EmployeeFinder resolves the employee an account is linked to.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo      Repository
	employees EmployeeFinder
	tokens    *token.Manager
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeFinder, tokens *token.Manager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employees: employees, tokens: tokens, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if dberror.IsUnavailable(err) {
			return TokenPair{}, AuthResponse{}, apperror.ErrStorageUnavailable.WithCause(err)
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Info("login rejected", zap.String("user_id", user.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrAccountDisabled
	}

	pair, err := s.issue(*user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	s.logger.Info("login success", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return pair, toResponse(*user), nil
}

// RefreshToken rotates both tokens. The user is reloaded so a disabled
// account or changed role takes effect on the next refresh.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidUserID
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrAccountDisabled
	}

	pair, err := s.issue(*user)
	if err != nil {
		return TokenPair{}, AuthResponse{}, err
	}
	return pair, toResponse(*user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}
	resp := toResponse(*u)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = domain.RoleEmployee
	}

	user := &User{
		ID:       uuid.New(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Name:     strings.TrimSpace(req.Name),
		Role:     role,
		IsActive: true,
	}

	if req.EmployeeID != "" {
		eID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return AuthResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		if _, err := s.employees.FindByID(ctx, eID.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
			}
			return AuthResponse{}, mapRepositoryError(err)
		}
		user.EmployeeID = &eID
	} else if role == domain.RoleEmployee {
		return AuthResponse{}, autherrors.ErrEmployeeRequired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}
	user.Password = string(hashed)

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Warn("register user failed", zap.String("email", user.Email), zap.Error(err))
		return AuthResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("register user success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return toResponse(*user), nil
}

func (s *service) issue(u User) (TokenPair, error) {
	sub := token.Subject{
		UserID:     u.ID.String(),
		EmployeeID: u.employeeIDString(),
		Role:       u.Role,
		Name:       u.Name,
	}
	access, err := s.tokens.IssueAccess(sub)
	if err != nil {
		s.logger.Error("issue access token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.tokens.IssueRefresh(sub)
	if err != nil {
		s.logger.Error("issue refresh token failed", zap.Error(err))
		return TokenPair{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func toResponse(u User) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		EmployeeID: u.employeeIDString(),
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
	}
}

func mapRepositoryError(err error) error {
	switch {
	case dberror.IsUniqueViolation(err, uniqueUserEmail):
		return autherrors.ErrEmailAlreadyRegistered
	case dberror.IsUniqueViolation(err, uniqueUserEmployee):
		return autherrors.ErrEmployeeAlreadyLinked
	case dberror.IsUnavailable(err):
		return apperror.ErrStorageUnavailable.WithCause(err)
	}
	return err
}
