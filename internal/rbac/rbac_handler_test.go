package rbac

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-tracking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	Service
	gotRole string
}

func (s *stubService) PermissionsForRole(role string) (domain.RolePermissionsResponse, error) {
	s.gotRole = role
	return domain.RolePermissionsResponse{Role: role, Permissions: []domain.PermissionResponse{{Resource: "report", Action: "read"}}}, nil
}

func TestHandler_MyPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubService{}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("role", "ADMIN")
	c.Request = httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil)

	h.MyPermissions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ADMIN", svc.gotRole)

	var body struct {
		Ok   bool                           `json:"ok"`
		Data domain.RolePermissionsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Len(t, body.Data.Permissions, 1)
}
