package authz_test

import (
	"testing"

	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/domain/models"
)

func TestFromLegacyName_MatrixBacked(t *testing.T) {
	role := authz.FromLegacyName("CFO")

	if role.Name() != "cfo" {
		t.Errorf("Name: got %q, want %q", role.Name(), "cfo")
	}
	if role.DisplayName() != "CFO" {
		t.Errorf("DisplayName: got %q", role.DisplayName())
	}
	if !role.Permissions()[authz.PermManageFunds] {
		t.Error("matrix-backed cfo should grant can_manage_funds")
	}
}

func TestFromLegacyName_UnknownIsEmpty(t *testing.T) {
	role := authz.FromLegacyName("not_a_role")
	if len(role.Permissions()) != 0 {
		t.Errorf("unknown legacy name must yield no permissions, got %v", role.Permissions())
	}
}

func TestFromLegacyName_NoRole(t *testing.T) {
	// A membership with neither role_id nor role resolves to zero capabilities.
	role := authz.FromLegacyName("")
	if len(role.Permissions()) != 0 {
		t.Error("empty role name must yield no permissions")
	}
}

func TestFromDocument(t *testing.T) {
	doc := models.Role{
		Name:        "fund_manager",
		DisplayName: "Fund Manager",
		Permissions: map[string]bool{
			authz.PermManageFunds: true,
			authz.PermManageUsers: false,
		},
	}
	role := authz.FromDocument(doc)

	if role.Name() != "fund_manager" {
		t.Errorf("Name: got %q", role.Name())
	}
	if role.DisplayName() != "Fund Manager" {
		t.Errorf("DisplayName: got %q", role.DisplayName())
	}
	if !role.Permissions()[authz.PermManageFunds] {
		t.Error("document role should grant can_manage_funds")
	}

	// The returned map is a copy.
	role.Permissions()[authz.PermManageUsers] = true
	if doc.Permissions[authz.PermManageUsers] {
		t.Error("mutating the returned map must not change the document")
	}
}

func TestFromDocument_FallbackDisplayName(t *testing.T) {
	role := authz.FromDocument(models.Role{Name: "external_auditor"})
	if role.DisplayName() != "External Auditor" {
		t.Errorf("DisplayName fallback: got %q", role.DisplayName())
	}
}
