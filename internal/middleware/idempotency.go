package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/contextutil"
	"go-tracking/internal/shared/response"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	idempotencyLockTTL   = 30 * time.Second
)

var ErrRequestInProgress = apperror.New(
	apperror.CodeConflict,
	"A request with this Idempotency-Key is still being processed",
	http.StatusConflict,
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored 2xx response for a repeated
// (route, user, Idempotency-Key) and rejects duplicates still in flight.
// Requests without the header, or with no Redis configured, pass through.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L().Named("middleware.idempotency"))
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.GetString(KeyUserID), idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Header("Idempotent-Replayed", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.AbortWithError(c, ErrRequestInProgress)
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Use a fresh context: the request context may already be cancelled.
		storeCtx, cancel := contextWithoutDeadline(ctx)
		defer cancel()

		status := w.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(cachedResponse{Status: status, Body: w.buf.Bytes()})
			if err == nil {
				if err := rdb.Set(storeCtx, cacheKey, payload, ttl).Err(); err != nil {
					log.Warn("idempotency store failed", zap.Error(err))
				}
			}
		}
		if err := rdb.Del(storeCtx, lockKey).Err(); err != nil {
			log.Warn("idempotency unlock failed", zap.Error(err))
		}
	}
}
