// internal/app/features/authapi/me.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/authz"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeMe handles GET /auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.UserID)
	if errors.Is(err, userstore.ErrNotFound) {
		httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err != nil {
		h.Log.Error("failed to load current user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	httpjson.Write(w, http.StatusOK, u)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// HandleChangePassword handles POST /auth/me/password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := authz.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req changePasswordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.NewPassword) < 8 {
		httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.UserID)
	if err != nil {
		h.Log.Error("failed to load current user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "password change failed")
		return
	}
	if !auth.CheckPassword(u.HashedPassword, req.CurrentPassword) {
		httpjson.Error(w, http.StatusForbidden, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.Log.Error("failed to hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "password change failed")
		return
	}
	if err := h.Users.SetPassword(ctx, u.ID, hash); err != nil {
		h.Log.Error("failed to store password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "password change failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
