// internal/app/features/roles/manage.go
package roles

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// HandleCreate handles POST /roles.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	role := models.Role{
		Name:        req.Name,
		DisplayName: htmlsanitize.Strip(req.DisplayName),
		Description: htmlsanitize.Strip(req.Description),
		Permissions: req.Permissions,
		IsActive:    true,
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}
	if role.DisplayName == "" {
		role.DisplayName = req.Name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Roles.Create(ctx, role)
	if errors.Is(err, rolestore.ErrDuplicateName) {
		httpjson.Error(w, http.StatusConflict, "a role with this name already exists")
		return
	}
	if err != nil {
		h.Log.Error("failed to create role", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create role")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

type updateRequest struct {
	Name        *string         `json:"name,omitempty"`
	DisplayName *string         `json:"display_name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// HandleUpdate handles PATCH /roles/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid role id")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := rolestore.Update{
		Name:        req.Name,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
	}
	if req.DisplayName != nil {
		clean := htmlsanitize.Strip(*req.DisplayName)
		upd.DisplayName = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Strip(*req.Description)
		upd.Description = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Roles.Update(ctx, id, upd)
	switch {
	case errors.Is(err, rolestore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "role not found")
	case errors.Is(err, rolestore.ErrSystemRoleName):
		httpjson.Error(w, http.StatusForbidden, "system role names cannot be changed")
	case errors.Is(err, rolestore.ErrDuplicateName):
		httpjson.Error(w, http.StatusConflict, "a role with this name already exists")
	case err != nil:
		h.Log.Error("failed to update role", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update role")
	default:
		httpjson.Write(w, http.StatusOK, updated)
	}
}

// HandleDelete handles DELETE /roles/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid role id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Roles.Delete(ctx, id)
	var inUse *rolestore.InUseError
	switch {
	case errors.Is(err, rolestore.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "role not found")
	case errors.Is(err, rolestore.ErrSystemRole):
		httpjson.Error(w, http.StatusForbidden, "system roles cannot be deleted")
	case errors.As(err, &inUse):
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("role is assigned to %d user(s); remove the assignments first", inUse.Count))
	case err != nil:
		h.Log.Error("failed to delete role", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete role")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleSeed handles POST /roles/seed: idempotently creates any missing
// default roles and reports the ones it added.
func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	created, err := h.Roles.SeedDefaults(ctx)
	if err != nil {
		h.Log.Error("failed to seed default roles", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to seed default roles")
		return
	}
	if created == nil {
		created = []models.Role{}
	}
	httpjson.Write(w, http.StatusOK, created)
}
