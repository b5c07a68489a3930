package session

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/response"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func writeBindError(c *gin.Context, err error) {
	writeServiceError(c, apperror.MapValidationError(err))
}

func (h *Handler) Start(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.service.Start(c.Request.Context(), c.GetString(middleware.KeyEmployeeID), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Stop(c *gin.Context) {
	var req StopSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	resp, err := h.service.Stop(c.Request.Context(), c.GetString(middleware.KeyEmployeeID), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.GetStatus(c.Request.Context(), c.GetString(middleware.KeyEmployeeID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.service.GetHistory(c.Request.Context(), c.Param("employeeId"), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
