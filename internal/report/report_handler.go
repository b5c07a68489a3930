package report

import (
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

func (h *Handler) Daily(c *gin.Context) {
	resp, err := h.service.DailySummary(c.Request.Context(), c.Param("employeeId"), c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Range(c *gin.Context) {
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RangeSummary(c.Request.Context(), c.Param("employeeId"), q.StartDate, q.EndDate)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
