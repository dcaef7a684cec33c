// internal/app/features/userorgs/handler.go

// Package userorgs serves membership management: assigning users to
// organizations with a role, listing and updating those assignments, and
// removing them. Responses carry the resolved role name and display name so
// clients never see the raw dual representation.
package userorgs

import (
	"context"

	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/domain/models"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for membership management.
type Handler struct {
	Memberships *membershipstore.Store
	Roles       *rolestore.Store
	Resolver    *membershipstore.Resolver
	Log         *zap.Logger
}

func NewHandler(memberships *membershipstore.Store, roles *rolestore.Store, resolver *membershipstore.Resolver, logger *zap.Logger) *Handler {
	return &Handler{Memberships: memberships, Roles: roles, Resolver: resolver, Log: logger}
}

// membershipView is a membership enriched with its resolved role.
type membershipView struct {
	models.Membership
	RoleName        string `json:"role_name"`
	RoleDisplayName string `json:"role_display_name"`
}

func (h *Handler) view(ctx context.Context, m models.Membership) (membershipView, error) {
	res, err := h.Resolver.Resolve(ctx, m)
	if err != nil {
		return membershipView{}, err
	}
	return membershipView{
		Membership:      res.Membership,
		RoleName:        res.Role.Name(),
		RoleDisplayName: res.Role.DisplayName(),
	}, nil
}
