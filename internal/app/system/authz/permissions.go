// internal/app/system/authz/permissions.go

// Package authz holds the static role taxonomy, its compiled-in permission
// matrix, and the request-identity helpers used by guards and handlers.
//
// The static roles predate the dynamic roles collection. They survive as the
// fallback vocabulary for legacy membership records and as the allow-list
// vocabulary for route guards. All lookups are fail-closed: an unknown role
// or permission name yields no permissions, never an error.
package authz

import "strings"

// StaticRole is a fixed, code-defined role identifier.
type StaticRole string

const (
	// RoleSuperAdmin can manage users and data across all organizations.
	RoleSuperAdmin StaticRole = "super_admin"

	// Fund operations roles.
	RoleFundAccountant    StaticRole = "fund_accountant"
	RoleFundAdministrator StaticRole = "fund_administrator"
	RoleCFO               StaticRole = "cfo"
	RoleGeneralPartner    StaticRole = "general_partner"
	RoleInvestor          StaticRole = "investor"
	RoleExternalAuditor   StaticRole = "external_auditor"
	RoleLegalCompliance   StaticRole = "legal_compliance"

	// Generic roles kept for backward compatibility. They carry no entries
	// in the permission matrix; route guards may still allow-list them.
	RoleAdmin   StaticRole = "admin"
	RoleManager StaticRole = "manager"
	RoleMember  StaticRole = "member"
	RoleViewer  StaticRole = "viewer"
)

// Permission names used by the matrix and by dynamic role documents.
const (
	PermManageOrganizations = "can_manage_organizations"
	PermManageUsers         = "can_manage_users"
	PermManageFunds         = "can_manage_funds"
	PermManageInvestors     = "can_manage_investors"
	PermManageProperties    = "can_manage_properties"
	PermViewAllData         = "can_view_all_data"
	PermViewFinancials      = "can_view_financials"
	PermApproveTransactions = "can_approve_transactions"
)

// rolePermissions is the closed permission matrix for static roles.
// Roles absent from this table (including the generic compatibility roles)
// resolve to an empty permission set.
var rolePermissions = map[StaticRole]map[string]bool{
	RoleSuperAdmin: {
		PermManageOrganizations: true,
		PermManageUsers:         true,
		PermManageFunds:         true,
		PermViewAllData:         true,
		PermManageInvestors:     true,
		PermManageProperties:    true,
		PermViewFinancials:      true,
		PermApproveTransactions: true,
	},
	RoleCFO: {
		PermManageOrganizations: false,
		PermManageUsers:         false,
		PermManageFunds:         true,
		PermViewAllData:         true,
		PermManageInvestors:     true,
		PermManageProperties:    true,
		PermViewFinancials:      true,
		PermApproveTransactions: true,
	},
	RoleFundAdministrator: {
		PermManageOrganizations: false,
		PermManageUsers:         false,
		PermManageFunds:         true,
		PermViewAllData:         true,
		PermManageInvestors:     true,
		PermManageProperties:    true,
		PermViewFinancials:      true,
		PermApproveTransactions: false,
	},
	RoleFundAccountant: {
		PermManageOrganizations: false,
		PermManageUsers:         false,
		PermManageFunds:         false,
		PermViewAllData:         true,
		PermManageInvestors:     false,
		PermManageProperties:    false,
		PermViewFinancials:      true,
		PermApproveTransactions: false,
	},
	RoleGeneralPartner: {
		PermManageOrganizations: false,
		PermManageUsers:         false,
		PermManageFunds:         true,
		PermViewAllData:         true,
		PermManageInvestors:     true,
		PermManageProperties:    true,
		PermViewFinancials:      true,
		PermApproveTransactions: true,
	},
	RoleInvestor: {
		PermManageOrganizations: false,
		PermManageUsers:         false,
		PermManageFunds:         false,
		PermViewAllData:         false,
		PermManageInvestors:     false,
		PermManageProperties:    false,
		PermViewFinancials:      false, // investors see only their own positions
		PermApproveTransactions: false,
	},
	RoleExternalAuditor: {
		PermManageOrganizations: false,
		PermManageUsers:         false,
		PermManageFunds:         false,
		PermViewAllData:         true,
		PermManageInvestors:     false,
		PermManageProperties:    false,
		PermViewFinancials:      true,
		PermApproveTransactions: false,
	},
	RoleLegalCompliance: {
		PermManageOrganizations: false,
		PermManageUsers:         false,
		PermManageFunds:         false,
		PermViewAllData:         true,
		PermManageInvestors:     false,
		PermManageProperties:    false,
		PermViewFinancials:      true,
		PermApproveTransactions: false,
	},
}

// AllStaticRoles lists every static role key in declaration order, for
// listing endpoints and seed tooling.
var AllStaticRoles = []StaticRole{
	RoleSuperAdmin,
	RoleFundAccountant,
	RoleFundAdministrator,
	RoleCFO,
	RoleGeneralPartner,
	RoleInvestor,
	RoleExternalAuditor,
	RoleLegalCompliance,
	RoleAdmin,
	RoleManager,
	RoleMember,
	RoleViewer,
}

// IsStaticRole reports whether name (case-insensitive) is one of the closed
// static role keys.
func IsStaticRole(name string) bool {
	key := StaticRole(strings.ToLower(strings.TrimSpace(name)))
	for _, r := range AllStaticRoles {
		if r == key {
			return true
		}
	}
	return false
}

// Permissions returns a copy of the matrix entry for role. Unknown roles
// return an empty map rather than an error.
func Permissions(role StaticRole) map[string]bool {
	perms := make(map[string]bool, len(rolePermissions[role]))
	for name, allowed := range rolePermissions[role] {
		perms[name] = allowed
	}
	return perms
}

// HasPermission reports whether role grants perm. Unknown roles and unknown
// permission names both report false.
func HasPermission(role StaticRole, perm string) bool {
	return rolePermissions[role][perm]
}

// DisplayName renders a static role key as a human-readable title,
// e.g. "fund_administrator" -> "Fund Administrator".
func DisplayName(role StaticRole) string {
	words := strings.Split(string(role), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if w == "cfo" {
			words[i] = "CFO"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
