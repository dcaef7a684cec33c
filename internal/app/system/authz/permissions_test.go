package authz_test

import (
	"testing"

	"github.com/dalemusser/fundops/internal/app/system/authz"
)

func TestPermissions_KnownRole(t *testing.T) {
	perms := authz.Permissions(authz.RoleCFO)
	if !perms[authz.PermManageFunds] {
		t.Error("cfo should have can_manage_funds")
	}
	if perms[authz.PermManageUsers] {
		t.Error("cfo should not have can_manage_users")
	}
}

func TestPermissions_UnknownRole(t *testing.T) {
	perms := authz.Permissions(authz.StaticRole("grand_poobah"))
	if len(perms) != 0 {
		t.Errorf("unknown role should have no permissions, got %v", perms)
	}
}

func TestPermissions_ReturnsCopy(t *testing.T) {
	perms := authz.Permissions(authz.RoleSuperAdmin)
	perms[authz.PermManageUsers] = false

	if !authz.HasPermission(authz.RoleSuperAdmin, authz.PermManageUsers) {
		t.Error("mutating the returned map must not change the matrix")
	}
}

func TestHasPermission_FailClosed(t *testing.T) {
	// Unknown role: every permission is false.
	if authz.HasPermission(authz.StaticRole("nope"), authz.PermViewAllData) {
		t.Error("unknown role must not grant permissions")
	}
	// Known role, unknown permission name.
	if authz.HasPermission(authz.RoleCFO, "can_launch_rockets") {
		t.Error("unknown permission name must report false")
	}
	// Generic compatibility roles carry no matrix entries.
	for _, role := range []authz.StaticRole{authz.RoleAdmin, authz.RoleManager, authz.RoleMember, authz.RoleViewer} {
		if authz.HasPermission(role, authz.PermViewAllData) {
			t.Errorf("generic role %q must have no matrix permissions", role)
		}
	}
}

func TestHasPermission_SuperAdmin(t *testing.T) {
	for _, perm := range []string{
		authz.PermManageOrganizations,
		authz.PermManageUsers,
		authz.PermManageFunds,
		authz.PermManageInvestors,
		authz.PermManageProperties,
		authz.PermViewAllData,
		authz.PermViewFinancials,
		authz.PermApproveTransactions,
	} {
		if !authz.HasPermission(authz.RoleSuperAdmin, perm) {
			t.Errorf("super_admin missing %s", perm)
		}
	}
}

func TestIsStaticRole(t *testing.T) {
	if !authz.IsStaticRole("cfo") {
		t.Error("cfo is a static role")
	}
	if !authz.IsStaticRole("  Fund_Administrator ") {
		t.Error("lookup should trim and fold case")
	}
	if authz.IsStaticRole("fund_manager") {
		t.Error("fund_manager is a seeded dynamic role, not a static key")
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[authz.StaticRole]string{
		authz.RoleFundAdministrator: "Fund Administrator",
		authz.RoleCFO:               "CFO",
		authz.RoleViewer:            "Viewer",
	}
	for role, want := range cases {
		if got := authz.DisplayName(role); got != want {
			t.Errorf("DisplayName(%q): got %q, want %q", role, got, want)
		}
	}
}
