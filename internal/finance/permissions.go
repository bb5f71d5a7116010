package finance

import "github.com/ItsMattG/property-tracker-sub009/internal/domain"

// rolePermissions is a pure lookup: permissions derive entirely from the
// role, with no stored state.
var rolePermissions = map[domain.EntityRole]domain.EntityPermissions{
	domain.RoleOwner: {
		CanViewFinancials: true,
		CanEditProperties: true,
		CanManageMembers:  true,
		CanExportReports:  true,
		CanDeleteEntity:   true,
	},
	domain.RoleAdmin: {
		CanViewFinancials: true,
		CanEditProperties: true,
		CanManageMembers:  true,
		CanExportReports:  true,
	},
	domain.RoleMember: {
		CanViewFinancials: true,
		CanEditProperties: true,
	},
	domain.RoleAccountant: {
		CanViewFinancials: true,
		CanExportReports:  true,
	},
}

// PermissionsForRole returns the permission set for a role. Unknown roles
// get no permissions.
func PermissionsForRole(role domain.EntityRole) domain.EntityPermissions {
	return rolePermissions[role]
}
