// internal/app/features/funds/routes.go
package funds

import (
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts fund endpoints under /organizations/{orgID}/funds. Reads
// take membership; writes take a fund-management role in the organization.
func Routes(h *Handler, m *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(m.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgMember("orgID"))
		pr.Get("/", h.ServeList)
		pr.Get("/{fundID}", h.ServeGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgRole("orgID",
			authz.RoleAdmin, authz.RoleCFO, authz.RoleGeneralPartner, authz.RoleFundAdministrator))
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{fundID}", h.HandleUpdate)
		pr.Delete("/{fundID}", h.HandleDelete)
	})

	return r
}
