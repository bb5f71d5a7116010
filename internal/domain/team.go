package domain

// EntityRole is a member's role within a portfolio entity (individual, trust
// or SMSF shared with advisors and family).
type EntityRole string

const (
	RoleOwner      EntityRole = "owner"
	RoleAdmin      EntityRole = "admin"
	RoleMember     EntityRole = "member"
	RoleAccountant EntityRole = "accountant"
)

// EntityPermissions is derived purely from a role — no stored state.
type EntityPermissions struct {
	CanViewFinancials bool `json:"can_view_financials"`
	CanEditProperties bool `json:"can_edit_properties"`
	CanManageMembers  bool `json:"can_manage_members"`
	CanExportReports  bool `json:"can_export_reports"`
	CanDeleteEntity   bool `json:"can_delete_entity"`
}
