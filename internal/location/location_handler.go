package location

import (
	"go-tracking/internal/middleware"
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/response"
	"net/http"

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

func (h *Handler) Track(c *gin.Context) {
	var req SampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.TrackLocation(c.Request.Context(), c.GetString(middleware.KeyEmployeeID), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Saved {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.TrackBatch(c.Request.Context(), c.GetString(middleware.KeyEmployeeID), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetHistory(c.Request.Context(), c.Param("employeeId"), q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Snapshot(c *gin.Context) {
	resp, err := h.service.ActiveSnapshot(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
