package rbac

import "go-tracking/internal/domain"

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
	Label    string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
}

type staticRepository struct {
	rows []RolePermissionRow
}

// NewRepository returns the built-in policy table. Roles are fixed, so the
// policy ships with the binary instead of living in the database.
func NewRepository() Repository {
	return &staticRepository{rows: defaultPolicy}
}

func (r *staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	out := make([]RolePermissionRow, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

var defaultPolicy = []RolePermissionRow{
	{domain.RoleEmployee, "session", "write", "Turn tracking on and off"},
	{domain.RoleEmployee, "location", "write", "Report location samples"},

	{domain.RoleAdmin, "location", "read", "View location history and live snapshot"},
	{domain.RoleAdmin, "session", "read", "View session history"},
	{domain.RoleAdmin, "report", "read", "View work summaries"},
	{domain.RoleAdmin, "dashboard", "read", "View dashboard statistics"},
	{domain.RoleAdmin, "live", "subscribe", "Subscribe to the live feed"},
	{domain.RoleAdmin, "employee", "*", "Manage employees"},
	{domain.RoleAdmin, "user", "create", "Register user accounts"},
}
