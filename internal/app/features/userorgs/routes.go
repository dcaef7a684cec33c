// internal/app/features/userorgs/routes.go
package userorgs

import (
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the membership endpoints under
// /organizations/{orgID}/members. Any member can see the roster; changing
// it takes an admin-grade role in that organization.
func Routes(h *Handler, m *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(m.RequireSignedIn)

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgMember("orgID"))
		pr.Get("/", h.ServeList)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireOrgRole("orgID", authz.RoleAdmin, authz.RoleGeneralPartner, authz.RoleFundAdministrator))
		pr.Post("/", h.HandleAssign)
		pr.Patch("/{userID}", h.HandleUpdateRole)
		pr.Delete("/{userID}", h.HandleRemove)
	})

	return r
}
