// internal/app/features/users/manage.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx, skip, limit)
	if err != nil {
		h.Log.Error("failed to list users", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	httpjson.Write(w, http.StatusOK, users)
}

// ServeGet handles GET /users/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to load user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

type updateRequest struct {
	Email       *string `json:"email,omitempty"`
	Username    *string `json:"username,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

// HandleUpdate handles PATCH /users/{id}. Granting or revoking the platform
// admin flag is reserved for callers who already hold it.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IsSuperuser != nil {
		caller, ok := authz.CurrentIdentity(r)
		if !ok || !caller.IsSuperuser {
			httpjson.Error(w, http.StatusForbidden, "only a platform admin can change the platform admin flag")
			return
		}
	}

	upd := userstore.Update{
		Email:       req.Email,
		Username:    req.Username,
		Phone:       req.Phone,
		IsActive:    req.IsActive,
		IsSuperuser: req.IsSuperuser,
	}
	if req.FirstName != nil {
		clean := htmlsanitize.Strip(*req.FirstName)
		upd.FirstName = &clean
	}
	if req.LastName != nil {
		clean := htmlsanitize.Strip(*req.LastName)
		upd.LastName = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Update(ctx, id, upd)
	switch {
	case errors.Is(err, userstore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "user not found")
	case errors.Is(err, userstore.ErrDuplicate):
		httpjson.Error(w, http.StatusConflict, "a user with this email or username already exists")
	case err != nil:
		h.Log.Error("failed to update user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update user")
	default:
		httpjson.Write(w, http.StatusOK, u)
	}
}

// HandleDelete handles DELETE /users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Users.Delete(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to delete user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
