package membershipstore_test

import (
	"testing"

	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/fundops/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupResolver(t *testing.T) (*membershipstore.Resolver, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return membershipstore.NewResolver(rolestore.New(db)), testutil.NewFixtures(t, db)
}

func TestResolver_DocumentByID(t *testing.T) {
	resolver, fixtures := setupResolver(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	role := fixtures.CreateRole(ctx, "fund_manager", true, map[string]bool{
		authz.PermManageFunds: true,
	})

	// The stale legacy name on the record is overwritten by the catalog name.
	res, err := resolver.Resolve(ctx, models.Membership{
		UserID:         primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
		RoleID:         &role.ID,
		Role:           "some_old_name",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Membership.Role != "fund_manager" {
		t.Errorf("legacy name should be rewritten to the catalog name, got %q", res.Membership.Role)
	}
	if res.Role.Name() != "fund_manager" {
		t.Errorf("Name(): got %q", res.Role.Name())
	}
	if res.Role.DisplayName() == "" {
		t.Error("DisplayName() should be populated")
	}
	if !res.Role.Permissions()[authz.PermManageFunds] {
		t.Error("permissions should come from the catalog document")
	}
}

func TestResolver_StaleID_FallsBackToName(t *testing.T) {
	resolver, _ := setupResolver(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	stale := primitive.NewObjectID()
	res, err := resolver.Resolve(ctx, models.Membership{
		UserID:         primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
		RoleID:         &stale,
		Role:           "cfo",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	// The stale id stays on the record as a data-integrity signal.
	if res.Membership.RoleID == nil || *res.Membership.RoleID != stale {
		t.Error("stale role_id must be preserved, not cleared")
	}
	if res.Role.Name() != "cfo" {
		t.Errorf("Name(): got %q", res.Role.Name())
	}
	if !res.Role.Permissions()[authz.PermViewFinancials] {
		t.Error("cfo should fall back to the static matrix permissions")
	}
}

func TestResolver_LegacyName_BackfillsID(t *testing.T) {
	resolver, fixtures := setupResolver(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	role := fixtures.CreateRole(ctx, "analyst", true, map[string]bool{
		authz.PermViewAllData: true,
	})

	res, err := resolver.Resolve(ctx, models.Membership{
		UserID:         primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
		Role:           "Analyst",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Membership.RoleID == nil || *res.Membership.RoleID != role.ID {
		t.Error("role_id should be backfilled from the catalog")
	}
	if res.Role.Name() != "analyst" {
		t.Errorf("Name(): got %q", res.Role.Name())
	}
}

func TestResolver_LegacyName_NoDocument(t *testing.T) {
	resolver, _ := setupResolver(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := resolver.Resolve(ctx, models.Membership{
		UserID:         primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
		Role:           "cfo",
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Membership.RoleID != nil {
		t.Error("a name with no catalog document must not grow a role_id")
	}
	if res.Role.Name() != "cfo" {
		t.Errorf("Name(): got %q", res.Role.Name())
	}
	if !res.Role.Permissions()[authz.PermViewFinancials] {
		t.Error("cfo permissions should come from the static matrix")
	}
}

func TestResolver_NoRole(t *testing.T) {
	resolver, _ := setupResolver(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := resolver.Resolve(ctx, models.Membership{
		UserID:         primitive.NewObjectID(),
		OrganizationID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(res.Role.Permissions()) != 0 {
		t.Error("a membership with no role must carry zero permissions")
	}
}

func TestResolver_ResolveAll(t *testing.T) {
	resolver, fixtures := setupResolver(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	role := fixtures.CreateRole(ctx, "admin", true, nil)
	ms := []models.Membership{
		{UserID: primitive.NewObjectID(), OrganizationID: primitive.NewObjectID(), RoleID: &role.ID},
		{UserID: primitive.NewObjectID(), OrganizationID: primitive.NewObjectID(), Role: "investor"},
	}

	out, err := resolver.ResolveAll(ctx, ms)
	if err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d resolved memberships, want 2", len(out))
	}
	if out[0].Role.Name() != "admin" || out[1].Role.Name() != "investor" {
		t.Errorf("names: got %q, %q", out[0].Role.Name(), out[1].Role.Name())
	}
}
