package rolestore_test

import (
	"errors"
	"fmt"
	"testing"

	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/app/system/indexes"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/fundops/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) (*rolestore.Store, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return rolestore.New(db), db
}

func TestStore_Create(t *testing.T) {
	store, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Role{
		Name:        "Compliance Lead",
		DisplayName: "Compliance Lead",
		Permissions: map[string]bool{authz.PermViewAllData: true},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Name != "compliance lead" {
		t.Errorf("Name should be folded: got %q", created.Name)
	}
	if created.IsSystem {
		t.Error("created roles must not be system roles")
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	store, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Role{Name: "admin", DisplayName: "Admin"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Role{Name: "admin", DisplayName: "Another Admin"})
	if !errors.Is(err, rolestore.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStore_GetByName_CaseInsensitive(t *testing.T) {
	store, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Role{Name: "fund_manager", DisplayName: "Fund Manager"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	role, err := store.GetByName(ctx, "FUND_MANAGER")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if role.Name != "fund_manager" {
		t.Errorf("Name: got %q", role.Name)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	store, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, rolestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update_SystemRoleNameFrozen(t *testing.T) {
	store, db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)

	sys := fixtures.CreateRole(ctx, "admin", true, map[string]bool{authz.PermManageUsers: true})

	// Renaming a system role is rejected.
	newName := "root"
	_, err := store.Update(ctx, sys.ID, rolestore.Update{Name: &newName})
	if !errors.Is(err, rolestore.ErrSystemRoleName) {
		t.Fatalf("expected ErrSystemRoleName, got %v", err)
	}

	// Everything else on a system role stays editable.
	display := "Administrator"
	updated, err := store.Update(ctx, sys.ID, rolestore.Update{DisplayName: &display})
	if err != nil {
		t.Fatalf("Update display_name failed: %v", err)
	}
	if updated.DisplayName != "Administrator" {
		t.Errorf("DisplayName: got %q", updated.DisplayName)
	}

	// Setting the same (unchanged) name is allowed.
	same := "admin"
	if _, err := store.Update(ctx, sys.ID, rolestore.Update{Name: &same}); err != nil {
		t.Fatalf("Update with unchanged name failed: %v", err)
	}
}

func TestStore_Update_Permissions(t *testing.T) {
	store, _ := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Role{Name: "ops", DisplayName: "Ops"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, rolestore.Update{
		Permissions: map[string]bool{authz.PermManageFunds: true},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Permissions[authz.PermManageFunds] {
		t.Error("permissions were not updated")
	}
}

func TestStore_Delete_SystemRole(t *testing.T) {
	store, db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)

	sys := fixtures.CreateRole(ctx, "admin", true, nil)

	if err := store.Delete(ctx, sys.ID); !errors.Is(err, rolestore.ErrSystemRole) {
		t.Fatalf("expected ErrSystemRole, got %v", err)
	}
}

func TestStore_Delete_InUse(t *testing.T) {
	store, db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)

	role := fixtures.CreateRole(ctx, "custom", false, nil)
	org := fixtures.CreateOrganization(ctx, "Org")

	for i := 0; i < 3; i++ {
		u := fixtures.CreateUser(ctx, fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@example.com", i))
		fixtures.CreateMembership(ctx, u.ID, org.ID, role.Name, &role.ID)
	}

	err := store.Delete(ctx, role.ID)
	var inUse *rolestore.InUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected InUseError, got %v", err)
	}
	if inUse.Count != 3 {
		t.Errorf("Count: got %d, want 3", inUse.Count)
	}

	// After removing the memberships, the delete goes through.
	if _, err := db.Collection("user_organizations").DeleteMany(ctx, bson.M{"role_id": role.ID}); err != nil {
		t.Fatalf("cleanup memberships: %v", err)
	}
	if err := store.Delete(ctx, role.ID); err != nil {
		t.Fatalf("Delete after unassignment failed: %v", err)
	}
	if _, err := store.GetByID(ctx, role.ID); !errors.Is(err, rolestore.ErrNotFound) {
		t.Fatalf("role should be gone, got %v", err)
	}
}

func TestStore_SeedDefaults_Idempotent(t *testing.T) {
	store, db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}
	if len(first) != len(rolestore.DefaultRoles) {
		t.Errorf("first seed created %d roles, want %d", len(first), len(rolestore.DefaultRoles))
	}

	second, err := store.SeedDefaults(ctx)
	if err != nil {
		t.Fatalf("SeedDefaults (second run) failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second seed created %d roles, want 0", len(second))
	}

	count, err := db.Collection("roles").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if int(count) != len(rolestore.DefaultRoles) {
		t.Errorf("role count: got %d, want %d", count, len(rolestore.DefaultRoles))
	}
}

func TestStore_SeedDefaults_NeverOverwrites(t *testing.T) {
	store, db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)

	// Pre-existing "viewer" role with operator-tweaked permissions.
	fixtures.CreateRole(ctx, "viewer", true, map[string]bool{authz.PermViewFinancials: true})

	if _, err := store.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}

	role, err := store.GetByName(ctx, "viewer")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if !role.Permissions[authz.PermViewFinancials] {
		t.Error("seeding must not overwrite an existing role's permissions")
	}
}

func TestStore_List_ActiveOnly(t *testing.T) {
	store, db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fixtures := testutil.NewFixtures(t, db)

	fixtures.CreateRole(ctx, "alpha", false, nil)
	inactive := fixtures.CreateRole(ctx, "beta", false, nil)
	if _, err := db.Collection("roles").UpdateOne(ctx,
		bson.M{"_id": inactive.ID}, bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		t.Fatalf("deactivate role: %v", err)
	}

	all, err := store.List(ctx, false, 0, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List(all): got %d roles, want 2", len(all))
	}

	active, err := store.List(ctx, true, 0, 0)
	if err != nil {
		t.Fatalf("List(activeOnly) failed: %v", err)
	}
	if len(active) != 1 || active[0].Name != "alpha" {
		t.Errorf("List(activeOnly): got %v", active)
	}
}
