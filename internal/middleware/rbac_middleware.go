package middleware

import (
	autherrors "go-tracking/internal/auth/errors"
	"go-tracking/internal/domain"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(KeyRole)
		if role == "" {
			response.AbortWithError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.AbortWithError(c, apperror.ErrInternal.WithCause(err))
			return
		}
		if !allowed {
			response.AbortWithError(c, autherrors.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			return
		}
		c.Next()
	}
}
