// internal/app/store/roles/seed.go
package rolestore

import (
	"context"
	"time"

	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultRoles are the system roles seeded at startup. Seeding is
// insert-only: an existing role with the same name is never overwritten, so
// operator edits to permissions survive restarts.
var DefaultRoles = []models.Role{
	{
		Name:        "admin",
		DisplayName: "Admin",
		Description: "Full administrative access to the organization",
		Permissions: map[string]bool{
			authz.PermManageUsers:         true,
			authz.PermManageFunds:         true,
			authz.PermManageInvestors:     true,
			authz.PermManageProperties:    true,
			authz.PermViewAllData:         true,
			authz.PermViewFinancials:      true,
			authz.PermApproveTransactions: true,
		},
		IsSystem: true,
		IsActive: true,
	},
	{
		Name:        "fund_manager",
		DisplayName: "Fund Manager",
		Description: "Can manage funds, investors, and properties",
		Permissions: map[string]bool{
			authz.PermManageUsers:         false,
			authz.PermManageFunds:         true,
			authz.PermManageInvestors:     true,
			authz.PermManageProperties:    true,
			authz.PermViewAllData:         true,
			authz.PermViewFinancials:      true,
			authz.PermApproveTransactions: true,
		},
		IsSystem: true,
		IsActive: true,
	},
	{
		Name:        "analyst",
		DisplayName: "Analyst",
		Description: "Can view and analyze data but cannot make changes",
		Permissions: map[string]bool{
			authz.PermManageUsers:         false,
			authz.PermManageFunds:         false,
			authz.PermManageInvestors:     false,
			authz.PermManageProperties:    false,
			authz.PermViewAllData:         true,
			authz.PermViewFinancials:      true,
			authz.PermApproveTransactions: false,
		},
		IsSystem: true,
		IsActive: true,
	},
	{
		Name:        "viewer",
		DisplayName: "Viewer",
		Description: "Read-only access to data",
		Permissions: map[string]bool{
			authz.PermManageUsers:         false,
			authz.PermManageFunds:         false,
			authz.PermManageInvestors:     false,
			authz.PermManageProperties:    false,
			authz.PermViewAllData:         true,
			authz.PermViewFinancials:      false,
			authz.PermApproveTransactions: false,
		},
		IsSystem: true,
		IsActive: true,
	},
}

// SeedDefaults inserts any default roles that do not exist yet and returns
// the roles it created. Calling it repeatedly is a no-op for names already
// in the catalog.
func (s *Store) SeedDefaults(ctx context.Context) ([]models.Role, error) {
	var created []models.Role
	now := time.Now().UTC()

	for _, def := range DefaultRoles {
		role := def
		role.ID = primitive.NewObjectID()
		role.CreatedAt = now
		role.UpdatedAt = now

		if _, err := s.c.InsertOne(ctx, role); err != nil {
			if wafflemongo.IsDup(err) {
				continue // already seeded
			}
			return created, err
		}
		created = append(created, role)
	}
	return created, nil
}
