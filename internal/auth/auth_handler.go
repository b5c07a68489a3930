package auth

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/shared/apperror"
	platform "go-tracking/internal/shared/request"
	"go-tracking/internal/shared/response"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// CookieOptions controls the httpOnly cookies handed to web clients.
type CookieOptions struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Handler struct {
	service Service
	cookies CookieOptions
}

func NewHandler(s Service, cookies CookieOptions) *Handler {
	return &Handler{service: s, cookies: cookies}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func isWeb(c *gin.Context) bool {
	return platform.IsWebClient(platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeTokens(c *gin.Context, pair TokenPair, user AuthResponse) {
	if isWeb(c) {
		h.setCookie(c, accessCookie, pair.AccessToken, int(h.cookies.AccessTTL.Seconds()))
		h.setCookie(c, refreshCookie, pair.RefreshToken, int(h.cookies.RefreshTTL.Seconds()))
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	pair, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.writeTokens(c, pair, user)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var refresh string
	if isWeb(c) {
		refresh, _ = c.Cookie(refreshCookie)
	}
	if refresh == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeServiceError(c, apperror.MapValidationError(err))
			return
		}
		refresh = req.RefreshToken
	}

	pair, user, err := h.service.RefreshToken(c.Request.Context(), refresh)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.writeTokens(c, pair, user)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetMe(c.Request.Context(), c.GetString(middleware.KeyUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, nil)
}

// Logout only clears cookies; issued tokens stay valid until they expire.
func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -1)
	h.setCookie(c, refreshCookie, "", -1)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}
