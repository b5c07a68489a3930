package middleware

import (
	"go-tracking/internal/metrics"
	"go-tracking/internal/shared/contextutil"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger and, once the handler has
// run, logs the access line. Must run after RequestID.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := contextutil.GetRequestID(c.Request.Context())

		reqLogger := logger.With(zap.String("request_id", rid))
		c.Request = c.Request.WithContext(contextutil.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		latency := time.Since(start)
		metrics.RecordAPIRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), latency)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("user_id", c.GetString(KeyUserID)),
		}
		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("request completed", fields...)
		case c.Writer.Status() >= 400:
			reqLogger.Warn("request completed", fields...)
		default:
			reqLogger.Debug("request completed", fields...)
		}
	}
}
