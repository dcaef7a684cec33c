// internal/app/features/userorgs/members.go
package userorgs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	membershipstore "github.com/dalemusser/fundops/internal/app/store/memberships"
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /organizations/{orgID}/members.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ms, err := h.Memberships.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("failed to list memberships", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	views := make([]membershipView, 0, len(ms))
	for _, m := range ms {
		v, err := h.view(ctx, m)
		if err != nil {
			h.Log.Error("failed to resolve membership role", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to list members")
			return
		}
		views = append(views, v)
	}
	httpjson.Write(w, http.StatusOK, views)
}

type assignRequest struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// HandleAssign handles POST /organizations/{orgID}/members. The role may
// name a catalog role (assigned by id) or a static key (assigned by name).
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	var req assignRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	roleName, roleID, err := h.resolveRoleInput(ctx, req.Role)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.Memberships.Assign(ctx, models.Membership{
		UserID:         userID,
		OrganizationID: orgID,
		RoleID:         roleID,
		Role:           roleName,
		IsPrimary:      req.IsPrimary,
	})
	switch {
	case errors.Is(err, membershipstore.ErrUserNotFound):
		httpjson.Error(w, http.StatusNotFound, "user not found")
	case errors.Is(err, membershipstore.ErrOrganizationNotFound):
		httpjson.Error(w, http.StatusNotFound, "organization not found")
	case errors.Is(err, membershipstore.ErrDuplicate):
		httpjson.Error(w, http.StatusConflict, "user is already a member of this organization")
	case err != nil:
		h.Log.Error("failed to assign membership", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to assign member")
	default:
		v, verr := h.view(ctx, m)
		if verr != nil {
			h.Log.Error("failed to resolve membership role", zap.Error(verr))
			httpjson.Error(w, http.StatusInternalServerError, "failed to assign member")
			return
		}
		httpjson.Write(w, http.StatusCreated, v)
	}
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// HandleUpdateRole handles PATCH /organizations/{orgID}/members/{userID}.
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateRoleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	roleName, roleID, err := h.resolveRoleInput(ctx, req.Role)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.Memberships.UpdateRole(ctx, userID, orgID, roleName, roleID)
	if errors.Is(err, membershipstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "membership not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to update membership role", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	v, err := h.view(ctx, m)
	if err != nil {
		h.Log.Error("failed to resolve membership role", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update member")
		return
	}
	httpjson.Write(w, http.StatusOK, v)
}

// HandleRemove handles DELETE /organizations/{orgID}/members/{userID}.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Memberships.RemoveByUserOrg(ctx, userID, orgID)
	if errors.Is(err, membershipstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "membership not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to remove membership", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to remove member")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveRoleInput turns a role name from a request into the stored
// (name, id) pair: catalog roles are referenced by id, static keys by name
// alone. Anything else is rejected.
func (h *Handler) resolveRoleInput(ctx context.Context, role string) (string, *primitive.ObjectID, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return "", nil, errors.New("role is required")
	}

	doc, err := h.Roles.GetByName(ctx, role)
	if err == nil {
		return doc.Name, &doc.ID, nil
	}
	if !errors.Is(err, rolestore.ErrNotFound) {
		return "", nil, errors.New("role lookup failed")
	}

	if authz.IsStaticRole(role) {
		return strings.ToLower(role), nil, nil
	}
	return "", nil, errors.New("unknown role")
}
