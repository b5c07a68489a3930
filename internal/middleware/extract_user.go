package middleware

import (
	sessionerrors "go-tracking/internal/session/errors"
	"go-tracking/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireEmployee rejects callers whose token is not linked to an employee.
// Tracking routes act on the caller's own employee record.
func RequireEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyEmployeeID) == "" {
			response.AbortWithError(c, sessionerrors.ErrEmployeeRequired)
			return
		}
		c.Next()
	}
}
