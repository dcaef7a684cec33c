// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Code:      "TST",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateUser creates an active test user.
func (f *Fixtures) CreateUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, username, email, false)
}

// CreateSuperuser creates an active platform-admin user.
func (f *Fixtures) CreateSuperuser(ctx context.Context, username, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, username, email, true)
}

func (f *Fixtures) createUser(ctx context.Context, username, email string, super bool) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		EmailCI:     text.Fold(email),
		Username:    username,
		IsActive:    true,
		IsSuperuser: super,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateRole creates a dynamic role document.
func (f *Fixtures) CreateRole(ctx context.Context, name string, system bool, perms map[string]bool) models.Role {
	f.t.Helper()

	now := time.Now().UTC()
	role := models.Role{
		ID:          primitive.NewObjectID(),
		Name:        text.Fold(name),
		DisplayName: name,
		Permissions: perms,
		IsSystem:    system,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("roles").InsertOne(ctx, role); err != nil {
		f.t.Fatalf("failed to create test role: %v", err)
	}
	return role
}

// CreateMembership creates a user_organizations document with a legacy role
// name, optionally carrying a role_id.
func (f *Fixtures) CreateMembership(ctx context.Context, userID, orgID primitive.ObjectID, roleName string, roleID *primitive.ObjectID) models.Membership {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Membership{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		OrganizationID: orgID,
		RoleID:         roleID,
		Role:           roleName,
		JoinedAt:       now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("user_organizations").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateFund creates a fund owned by the given organization.
func (f *Fixtures) CreateFund(ctx context.Context, name string, orgID primitive.ObjectID) models.Fund {
	f.t.Helper()

	now := time.Now().UTC()
	fund := models.Fund{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		FundType:       "real_estate",
		Currency:       "USD",
		Status:         "active",
		OrganizationID: &orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("funds").InsertOne(ctx, fund); err != nil {
		f.t.Fatalf("failed to create test fund: %v", err)
	}
	return fund
}

// CreateInvestor creates an investor for the given organization.
func (f *Fixtures) CreateInvestor(ctx context.Context, name string, orgID primitive.ObjectID) models.Investor {
	f.t.Helper()

	now := time.Now().UTC()
	inv := models.Investor{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		InvestorType:   "institutional",
		Status:         "active",
		OrganizationID: &orgID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := f.db.Collection("investors").InsertOne(ctx, inv); err != nil {
		f.t.Fatalf("failed to create test investor: %v", err)
	}
	return inv
}
