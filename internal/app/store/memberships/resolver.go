// internal/app/store/memberships/resolver.go
package membershipstore

import (
	"context"
	"errors"

	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/domain/models"
)

// Resolved couples a membership with the canonical view of its role. The
// Membership field is the enriched copy: the legacy role name is rewritten
// to the catalog name when an id lookup succeeds, and a missing role_id is
// filled in when a name lookup finds a catalog document. Nothing is written
// back to the database; resolution sits on the read path.
type Resolved struct {
	Membership models.Membership
	Role       authz.ResolvedRole
}

// Resolver reconciles the two role representations a membership can carry:
// a role_id pointing into the roles collection, or a bare legacy role name.
type Resolver struct {
	roles *rolestore.Store
}

func NewResolver(roles *rolestore.Store) *Resolver {
	return &Resolver{roles: roles}
}

// Resolve produces the canonical role for one membership.
//
// The id takes priority: when it loads, the catalog document wins and the
// legacy name is overwritten with the catalog name. A role_id that loads
// nothing is stale; it is left on the record as a data-integrity signal and
// resolution falls through to the legacy name. A legacy name that matches a
// catalog document backfills role_id; one that does not is evaluated
// against the static permission matrix, where unknown names carry no
// permissions. Store failures propagate so a broken lookup can never
// resolve to a permissive role.
func (r *Resolver) Resolve(ctx context.Context, m models.Membership) (Resolved, error) {
	if m.RoleID != nil {
		doc, err := r.roles.GetByID(ctx, *m.RoleID)
		if err == nil {
			m.Role = doc.Name
			return Resolved{Membership: m, Role: authz.FromDocument(doc)}, nil
		}
		if !errors.Is(err, rolestore.ErrNotFound) {
			return Resolved{}, err
		}
		// Stale id: keep it in place and fall through to the legacy name.
	}

	if m.Role != "" {
		doc, err := r.roles.GetByName(ctx, m.Role)
		if err == nil {
			if m.RoleID == nil {
				m.RoleID = &doc.ID
			}
			m.Role = doc.Name
			return Resolved{Membership: m, Role: authz.FromDocument(doc)}, nil
		}
		if !errors.Is(err, rolestore.ErrNotFound) {
			return Resolved{}, err
		}
	}

	// No catalog document anywhere: evaluate the name (possibly empty)
	// against the static matrix. Unknown or absent names grant nothing.
	return Resolved{Membership: m, Role: authz.FromLegacyName(m.Role)}, nil
}

// ResolveAll resolves a slice of memberships in order.
func (r *Resolver) ResolveAll(ctx context.Context, ms []models.Membership) ([]Resolved, error) {
	out := make([]Resolved, 0, len(ms))
	for _, m := range ms {
		res, err := r.Resolve(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
