package bootstrap

import (
	"context"
	"errors"
	"testing"

	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/fundops/internal/testutil"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestStartup_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	u, err := users.Create(ctx, models.User{
		Email:    "ops@example.com",
		Username: "ops",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.IsSuperuser {
		t.Fatal("new user should not be a platform admin")
	}

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{SuperAdminEmail: "ops@example.com"}

	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	got, err := users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !got.IsSuperuser {
		t.Error("expected user to be promoted to platform admin")
	}

	// Running again is a no-op.
	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("second Startup failed: %v", err)
	}
}

func TestStartup_MissingAccountIsNotFatal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{SuperAdminEmail: "nobody@example.com"}

	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	users := userstore.New(db)
	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, userstore.ErrNotFound) {
		t.Fatalf("expected no account to be created, got %v", err)
	}
}

func TestStartup_NoEmailConfigured(t *testing.T) {
	deps := DBDeps{}
	if err := Startup(context.Background(), nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
}
