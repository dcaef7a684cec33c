package accesspolicy_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/fundops/internal/app/policy/accesspolicy"
	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/fundops/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) (*accesspolicy.Policy, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ms := membershipstore.New(db)
	resolver := membershipstore.NewResolver(rolestore.New(db))
	return accesspolicy.New(ms, resolver), testutil.NewFixtures(t, db)
}

func identityFor(u models.User) authz.Identity {
	return authz.Identity{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	}
}

func TestAllowAny_PlatformAdmin(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Zero memberships; the identity flag alone is enough.
	admin := fixtures.CreateSuperuser(ctx, "root", "root@example.com")

	ok, err := policy.AllowAny(ctx, identityFor(admin), authz.RoleCFO)
	if err != nil {
		t.Fatalf("AllowAny failed: %v", err)
	}
	if !ok {
		t.Error("platform admin should pass regardless of membership state")
	}
}

func TestAllowAny_SuperAdminRoleInAnyOrg(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	orgA := fixtures.CreateOrganization(ctx, "Org A")
	fixtures.CreateMembership(ctx, user.ID, orgA.ID, string(authz.RoleSuperAdmin), nil)

	// The allow-list does not include super_admin; the bypass still fires.
	ok, err := policy.AllowAny(ctx, identityFor(user), authz.RoleCFO)
	if err != nil {
		t.Fatalf("AllowAny failed: %v", err)
	}
	if !ok {
		t.Error("super_admin membership in any org should pass the global guard")
	}
}

func TestAllowAny_AllowList(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	org := fixtures.CreateOrganization(ctx, "Org A")
	fixtures.CreateMembership(ctx, user.ID, org.ID, string(authz.RoleCFO), nil)

	ok, err := policy.AllowAny(ctx, identityFor(user), authz.RoleCFO, authz.RoleGeneralPartner)
	if err != nil {
		t.Fatalf("AllowAny failed: %v", err)
	}
	if !ok {
		t.Error("allow-listed role should pass")
	}

	ok, err = policy.AllowAny(ctx, identityFor(user), authz.RoleGeneralPartner)
	if err != nil {
		t.Fatalf("AllowAny failed: %v", err)
	}
	if ok {
		t.Error("role outside the allow-list should be denied")
	}
}

func TestAllowAny_NoMemberships(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")

	ok, err := policy.AllowAny(ctx, identityFor(user), authz.RoleViewer)
	if err != nil {
		t.Fatalf("AllowAny failed: %v", err)
	}
	if ok {
		t.Error("a user with no memberships should be denied")
	}
}

func TestAllowInOrg_PlatformAdmin(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateSuperuser(ctx, "root", "root@example.com")

	if err := policy.AllowInOrg(ctx, identityFor(admin), primitive.NewObjectID(), authz.RoleCFO); err != nil {
		t.Fatalf("platform admin should pass, got %v", err)
	}
}

func TestAllowInOrg_NoMembership(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	fixtures.CreateMembership(ctx, user.ID, orgA.ID, string(authz.RoleCFO), nil)

	err := policy.AllowInOrg(ctx, identityFor(user), orgB.ID, authz.RoleCFO)
	if !errors.Is(err, accesspolicy.ErrNoOrgAccess) {
		t.Fatalf("expected ErrNoOrgAccess, got %v", err)
	}
}

func TestAllowInOrg_InsufficientRole(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	org := fixtures.CreateOrganization(ctx, "Org A")
	fixtures.CreateMembership(ctx, user.ID, org.ID, string(authz.RoleInvestor), nil)

	err := policy.AllowInOrg(ctx, identityFor(user), org.ID, authz.RoleCFO, authz.RoleGeneralPartner)
	if !errors.Is(err, accesspolicy.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestAllowInOrg_AllowListAndSuperAdmin(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org A")

	cfo := fixtures.CreateUser(ctx, "carol", "carol@example.com")
	fixtures.CreateMembership(ctx, cfo.ID, org.ID, string(authz.RoleCFO), nil)
	if err := policy.AllowInOrg(ctx, identityFor(cfo), org.ID, authz.RoleCFO); err != nil {
		t.Errorf("allow-listed role should pass, got %v", err)
	}

	super := fixtures.CreateUser(ctx, "sam", "sam@example.com")
	fixtures.CreateMembership(ctx, super.ID, org.ID, string(authz.RoleSuperAdmin), nil)
	if err := policy.AllowInOrg(ctx, identityFor(super), org.ID, authz.RoleCFO); err != nil {
		t.Errorf("super_admin member should pass any allow-list, got %v", err)
	}
}

func TestAllowInOrg_DynamicRole(t *testing.T) {
	policy, fixtures := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A membership referencing a catalog role by id resolves to the catalog
	// name and is matched against the allow-list like any static key.
	org := fixtures.CreateOrganization(ctx, "Org A")
	role := fixtures.CreateRole(ctx, "cfo", false, map[string]bool{authz.PermViewFinancials: true})
	user := fixtures.CreateUser(ctx, "alice", "alice@example.com")
	fixtures.CreateMembership(ctx, user.ID, org.ID, "stale_name", &role.ID)

	if err := policy.AllowInOrg(ctx, identityFor(user), org.ID, authz.RoleCFO); err != nil {
		t.Errorf("id-referenced role should match the allow-list by name, got %v", err)
	}
}
