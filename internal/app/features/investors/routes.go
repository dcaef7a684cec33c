// internal/app/features/investors/routes.go
package investors

import (
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts investor endpoints under /organizations/{orgID}/investors.
func Routes(h *Handler, m *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(m.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgMember("orgID"))
		pr.Get("/", h.ServeList)
		pr.Get("/{investorID}", h.ServeGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgRole("orgID",
			authz.RoleAdmin, authz.RoleCFO, authz.RoleGeneralPartner, authz.RoleFundAdministrator))
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{investorID}", h.HandleUpdate)
		pr.Delete("/{investorID}", h.HandleDelete)
	})

	return r
}
