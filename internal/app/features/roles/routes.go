// internal/app/features/roles/routes.go
package roles

import (
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the role catalog endpoints (typically under /roles).
// Reads are open to any signed-in user; mutations go through the global
// guard so only platform admins, super_admins, and org admins reach them.
func Routes(h *Handler, m *auth.Middleware) chi.Router {
	r := chi.NewRouter()
	r.Use(m.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/static", h.ServeStatic)
	r.Get("/name/{name}", h.ServeGetByName)
	r.Get("/{id}", h.ServeGet)

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireAnyRole(authz.RoleAdmin))
		pr.Post("/", h.HandleCreate)
		pr.Post("/seed", h.HandleSeed)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
