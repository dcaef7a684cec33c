// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account endpoints (typically under /auth).
func Routes(h *Handler, m *auth.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(m.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
		pr.Post("/me/password", h.HandleChangePassword)
	})

	return r
}
