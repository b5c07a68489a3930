package rbac

import (
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

// MyPermissions lists what the caller's role may do.
func (h *Handler) MyPermissions(c *gin.Context) {
	resp, err := h.service.PermissionsForRole(c.GetString("role"))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
