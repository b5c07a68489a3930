package middleware

import (
	"errors"
	autherrors "go-tracking/internal/auth/errors"
	"go-tracking/internal/shared/contextutil"
	"go-tracking/internal/shared/response"
	"go-tracking/internal/shared/token"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by AuthMiddleware.
const (
	KeyUserID     = "user_id"
	KeyEmployeeID = "employee_id"
	KeyRole       = "role"
	KeyName       = "name"
)

// AuthMiddleware accepts a bearer header or the access_token cookie.
func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return authenticate(tokens, false)
}

// WebsocketAuth also accepts a ?token= query parameter, since browsers cannot
// set headers on a websocket upgrade.
func WebsocketAuth(tokens *token.Manager) gin.HandlerFunc {
	return authenticate(tokens, true)
}

func authenticate(tokens *token.Manager, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c, allowQuery)
		if raw == "" {
			response.AbortWithError(c, autherrors.ErrTokenMissing)
			return
		}

		claims, err := tokens.Parse(raw, token.TypeAccess)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				response.AbortWithError(c, autherrors.ErrTokenExpired)
				return
			}
			response.AbortWithError(c, autherrors.ErrInvalidToken)
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyEmployeeID, claims.EmployeeID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyName, claims.Name)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithEmployeeID(ctx, claims.EmployeeID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func ExtractToken(c *gin.Context, allowQuery bool) string {
	if raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && raw != "" {
		return strings.TrimSpace(raw)
	}
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}
	if allowQuery {
		return c.Query("token")
	}
	return ""
}
