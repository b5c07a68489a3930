package rbac

import (
	"errors"
	"testing"

	"go-tracking/internal/domain"
	"go-tracking/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	rows []RolePermissionRow
	err  error
}

func (f *fakeRepo) GetRolePermissions() ([]RolePermissionRow, error) { return f.rows, f.err }

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc, err := NewService(repo, e, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestService_Enforce_DefaultPolicy(t *testing.T) {
	svc := newTestService(t, NewRepository())

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{domain.RoleEmployee, "session", "write", true},
		{domain.RoleEmployee, "location", "write", true},
		{domain.RoleEmployee, "location", "read", false},
		{domain.RoleEmployee, "live", "subscribe", false},
		{domain.RoleAdmin, "live", "subscribe", true},
		{domain.RoleAdmin, "employee", "delete", true},
		{domain.RoleAdmin, "session", "write", false},
		{"employee", "location", "write", true},
		{"", "location", "write", false},
		{"GUEST", "report", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.resource+":"+tt.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestService_PermissionsForRole(t *testing.T) {
	svc := newTestService(t, &fakeRepo{rows: []RolePermissionRow{
		{Role: "ADMIN", Resource: "report", Action: "read", Label: "View work summaries"},
		{Role: "EMPLOYEE", Resource: "session", Action: "write", Label: "Toggle"},
	}})

	resp, err := svc.PermissionsForRole("admin")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Role)
	require.Len(t, resp.Permissions, 1)
	assert.Equal(t, domain.PermissionResponse{Resource: "report", Action: "read", Label: "View work summaries"}, resp.Permissions[0])
}

func TestNewService_RepoError(t *testing.T) {
	e, err := infra.NewEnforcer()
	require.NoError(t, err)

	_, err = NewService(&fakeRepo{err: errors.New("boom")}, e, zap.NewNop())
	assert.EqualError(t, err, "boom")
}
