// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts tenant administration under /organizations. Listing is open
// to any signed-in user; reading one organization takes membership in it;
// creation and deletion go through the global guard, and per-organization
// edits take an admin-grade role in that organization.
func Routes(h *Handler, m *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(m.RequireSignedIn)

	r.Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireAnyRole(authz.RoleAdmin))
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{orgID}", h.HandleDelete)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgMember("orgID"))
		pr.Get("/{orgID}", h.ServeGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgRole("orgID", authz.RoleAdmin, authz.RoleGeneralPartner))
		pr.Patch("/{orgID}", h.HandleUpdate)
	})

	return r
}
