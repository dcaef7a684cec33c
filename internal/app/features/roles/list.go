// internal/app/features/roles/list.go
package roles

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /roles. ?active_only=true filters out inactive
// roles; skip/limit paginate.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	roles, err := h.Roles.List(ctx, activeOnly, skip, limit)
	if err != nil {
		h.Log.Error("failed to list roles", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list roles")
		return
	}
	httpjson.Write(w, http.StatusOK, roles)
}

// ServeGet handles GET /roles/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid role id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.GetByID(ctx, id)
	if errors.Is(err, rolestore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "role not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to load role", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load role")
		return
	}
	httpjson.Write(w, http.StatusOK, role)
}

// ServeGetByName handles GET /roles/name/{name}. The lookup is
// case-insensitive.
func (h *Handler) ServeGetByName(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	role, err := h.Roles.GetByName(ctx, chi.URLParam(r, "name"))
	if errors.Is(err, rolestore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "role not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to load role", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load role")
		return
	}
	httpjson.Write(w, http.StatusOK, role)
}

type staticRoleView struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Permissions map[string]bool `json:"permissions"`
}

// ServeStatic handles GET /roles/static: the compiled-in role vocabulary
// and its permission matrix, for clients building allow-list UIs.
func (h *Handler) ServeStatic(w http.ResponseWriter, r *http.Request) {
	out := make([]staticRoleView, 0, len(authz.AllStaticRoles))
	for _, role := range authz.AllStaticRoles {
		out = append(out, staticRoleView{
			Name:        string(role),
			DisplayName: authz.DisplayName(role),
			Permissions: authz.Permissions(role),
		})
	}
	httpjson.Write(w, http.StatusOK, out)
}
