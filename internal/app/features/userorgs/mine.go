// internal/app/features/userorgs/mine.go
package userorgs

import (
	"context"
	"net/http"

	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeMine handles GET /me/organizations: the caller's own memberships
// with resolved roles.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ms, err := h.Memberships.GetForUser(ctx, id.UserID)
	if err != nil {
		h.Log.Error("failed to list own memberships", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}

	views := make([]membershipView, 0, len(ms))
	for _, m := range ms {
		v, err := h.view(ctx, m)
		if err != nil {
			h.Log.Error("failed to resolve membership role", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to list memberships")
			return
		}
		views = append(views, v)
	}
	httpjson.Write(w, http.StatusOK, views)
}

// ServeForUser handles GET /users/{id}/organizations: an arbitrary user's
// memberships with resolved roles, for the admin surface.
func (h *Handler) ServeForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ms, err := h.Memberships.GetForUser(ctx, userID)
	if err != nil {
		h.Log.Error("failed to list user memberships", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}

	views := make([]membershipView, 0, len(ms))
	for _, m := range ms {
		v, err := h.view(ctx, m)
		if err != nil {
			h.Log.Error("failed to resolve membership role", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to list memberships")
			return
		}
		views = append(views, v)
	}
	httpjson.Write(w, http.StatusOK, views)
}
