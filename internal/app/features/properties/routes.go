// internal/app/features/properties/routes.go
package properties

import (
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts property endpoints under
// /organizations/{orgID}/funds/{fundID}/properties.
func Routes(h *Handler, m *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(m.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgMember("orgID"))
		pr.Get("/", h.ServeList)
		pr.Get("/{propertyID}", h.ServeGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgRole("orgID",
			authz.RoleAdmin, authz.RoleCFO, authz.RoleGeneralPartner, authz.RoleFundAdministrator))
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{propertyID}", h.HandleUpdate)
		pr.Delete("/{propertyID}", h.HandleDelete)
	})

	return r
}
