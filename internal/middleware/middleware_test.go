package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-tracking/internal/domain"
	"go-tracking/internal/shared/contextutil"
	"go-tracking/internal/shared/token"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens() *token.Manager {
	return token.NewManager("test-secret", time.Minute, time.Hour)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens()
	access, err := tokens.IssueAccess(token.Subject{UserID: "u-1", EmployeeID: "e-1", Role: domain.RoleEmployee})
	require.NoError(t, err)
	refresh, err := tokens.IssueRefresh(token.Subject{UserID: "u-1"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		assert.Equal(t, "e-1", contextutil.GetEmployeeID(c.Request.Context()))
		c.String(http.StatusOK, c.GetString(KeyUserID)+"|"+c.GetString(KeyRole))
	})
	r.GET("/ws", WebsocketAuth(tokens), func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("missing token", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token not found")
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-1|EMPLOYEE", w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: access})
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("refresh token rejected as access", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("query token only on websocket route", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/me?token="+access, nil)).Code)
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ws?token="+access, nil)).Code)
	})
}

type fakeEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	build := func(enf *fakeEnforcer, role string) *gin.Engine {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			if role != "" {
				c.Set(KeyRole, role)
			}
		}, RBACAuthorize(enf, "report", "read"), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	enf := &fakeEnforcer{allowed: true}
	assert.Equal(t, http.StatusOK, serve(build(enf, "ADMIN"), httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	assert.Equal(t, domain.EnforceRequest{Role: "ADMIN", Resource: "report", Action: "read"}, enf.got)

	w := serve(build(&fakeEnforcer{allowed: false}, "EMPLOYEE"), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "report:read")

	assert.Equal(t, http.StatusUnauthorized, serve(build(&fakeEnforcer{}, ""), httptest.NewRequest(http.MethodGet, "/x", nil)).Code)

	w = serve(build(&fakeEnforcer{err: errors.New("model broken")}, "ADMIN"), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "model broken")
}

func TestRequireEmployee(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { c.Set(KeyEmployeeID, c.Query("e")) }, RequireEmployee(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x?e=emp-1", nil)).Code)
}

func TestRateLimitByIP(t *testing.T) {
	limiter := NewKeyRateLimiter(rate.Every(time.Hour), 2)
	r := gin.New()
	r.GET("/x", RateLimitByIP(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
}

func TestKeyRateLimiter_Prune(t *testing.T) {
	limiter := NewKeyRateLimiter(rate.Every(time.Second), 1)
	limiter.GetLimiter("a")
	limiter.GetLimiter("b")
	limiter.keys["a"].lastSeen = time.Now().Add(-time.Hour)

	assert.Equal(t, 1, limiter.Prune(10*time.Minute))
	assert.Equal(t, 1, limiter.Len())
}

func TestRequestTimeout(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequestTimeout(50*time.Millisecond), func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "rid-42")
	w := serve(r, req)
	assert.Equal(t, "rid-42", w.Body.String())
	assert.Equal(t, "rid-42", w.Header().Get(HeaderRequestID))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestIdempotency(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	calls := 0
	r := gin.New()
	r.POST("/batch", func(c *gin.Context) { c.Set(KeyUserID, "u-1") }, Idempotency(rdb, time.Hour), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"saved": 3})
	})

	cacheKey := "idemp:/batch:u-1:k-1"

	t.Run("no header passes through", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/batch", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("replays stored response", func(t *testing.T) {
		mock.ExpectGet(cacheKey).SetVal(`{"status":201,"body":{"ok":true,"data":{"saved":3}}}`)

		req := httptest.NewRequest(http.MethodPost, "/batch", nil)
		req.Header.Set(HeaderIdempotencyKey, "k-1")
		w := serve(r, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true,"data":{"saved":3}}`, w.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("in-flight duplicate rejected", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/batch", nil)
		req.Header.Set(HeaderIdempotencyKey, "k-1")
		w := serve(r, req)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, calls)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContextWithoutDeadline(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	cancel()

	ctx, done := contextWithoutDeadline(parent)
	defer done()
	assert.NoError(t, ctx.Err())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://admin.example.com"))
	hit := 0
	r.GET("/x", func(c *gin.Context) { hit++; c.Status(http.StatusOK) })
	r.OPTIONS("/x", func(c *gin.Context) { hit++; c.Status(http.StatusTeapot) })

	pre := httptest.NewRequest(http.MethodOptions, "/x", nil)
	pre.Header.Set("Origin", "https://admin.example.com")
	pre.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := serve(r, pre)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Zero(t, hit, "preflight is answered by the middleware")

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 1, hit)
}
