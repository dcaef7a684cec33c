// internal/app/policy/accesspolicy/accesspolicy.go

// Package accesspolicy implements the request-time authorization guards.
// Both guards are pure decision functions over freshly-read membership
// state; they never write and never cache across requests.
package accesspolicy

import (
	"context"
	"errors"

	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The two denial reasons are distinct so callers can report "you are not in
// this organization" separately from "your role is not enough".
var (
	ErrNoOrgAccess      = errors.New("no access to this organization")
	ErrInsufficientRole = errors.New("insufficient permission")
)

type Policy struct {
	memberships *membershipstore.Store
	resolver    *membershipstore.Resolver
}

func New(memberships *membershipstore.Store, resolver *membershipstore.Resolver) *Policy {
	return &Policy{memberships: memberships, resolver: resolver}
}

// AllowAny is the global guard. It admits, in order: platform admins;
// holders of the super-admin role in any organization; holders of any
// allow-listed role in any organization. A store failure propagates as an
// error and the caller must deny.
//
// Checking super-admin before organization scope means the role in one
// organization opens globally guarded operations that concern another.
// That escalation is intentional and relied upon by platform tooling.
func (p *Policy) AllowAny(ctx context.Context, id authz.Identity, allowed ...authz.StaticRole) (bool, error) {
	if id.IsSuperuser {
		return true, nil
	}

	ms, err := p.memberships.GetForUser(ctx, id.UserID)
	if err != nil {
		return false, err
	}
	resolved, err := p.resolver.ResolveAll(ctx, ms)
	if err != nil {
		return false, err
	}

	for _, r := range resolved {
		if r.Role.Name() == string(authz.RoleSuperAdmin) {
			return true, nil
		}
	}
	for _, r := range resolved {
		if roleAllowed(r.Role.Name(), allowed) {
			return true, nil
		}
	}
	return false, nil
}

// AllowInOrg is the organization-scoped guard. A nil return means allow.
// ErrNoOrgAccess means the user has no membership in the organization at
// all; ErrInsufficientRole means they are a member but their role is not in
// the allow-list. Any other error is a store failure and must deny.
func (p *Policy) AllowInOrg(ctx context.Context, id authz.Identity, orgID primitive.ObjectID, allowed ...authz.StaticRole) error {
	if id.IsSuperuser {
		return nil
	}

	m, err := p.memberships.Get(ctx, id.UserID, orgID)
	if errors.Is(err, membershipstore.ErrNotFound) {
		return ErrNoOrgAccess
	}
	if err != nil {
		return err
	}

	resolved, err := p.resolver.Resolve(ctx, m)
	if err != nil {
		return err
	}

	name := resolved.Role.Name()
	if name == string(authz.RoleSuperAdmin) || roleAllowed(name, allowed) {
		return nil
	}
	return ErrInsufficientRole
}

// MemberOf admits platform admins and anyone holding a membership in the
// organization, regardless of role. Used for read endpoints where presence
// in the tenant is the only requirement.
func (p *Policy) MemberOf(ctx context.Context, id authz.Identity, orgID primitive.ObjectID) error {
	if id.IsSuperuser {
		return nil
	}
	_, err := p.memberships.Get(ctx, id.UserID, orgID)
	if errors.Is(err, membershipstore.ErrNotFound) {
		return ErrNoOrgAccess
	}
	return err
}

func roleAllowed(name string, allowed []authz.StaticRole) bool {
	for _, a := range allowed {
		if name == string(a) {
			return true
		}
	}
	return false
}
