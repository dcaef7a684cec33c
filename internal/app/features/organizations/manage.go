// internal/app/features/organizations/manage.go
package organizations

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	orgstore "github.com/dalemusser/fundops/internal/app/store/organizations"
	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /organizations.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Orgs.List(ctx, activeOnly, skip, limit)
	if err != nil {
		h.Log.Error("failed to list organizations", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list organizations")
		return
	}
	httpjson.Write(w, http.StatusOK, orgs)
}

// ServeGet handles GET /organizations/{orgID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if errors.Is(err, orgstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to load organization", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load organization")
		return
	}
	httpjson.Write(w, http.StatusOK, org)
}

type createRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`
}

// HandleCreate handles POST /organizations.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:        htmlsanitize.Strip(req.Name),
		Code:        strings.TrimSpace(req.Code),
		Description: htmlsanitize.Strip(req.Description),
		Address:     htmlsanitize.Strip(req.Address),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Website:     strings.TrimSpace(req.Website),
		IsActive:    true,
	})
	if err != nil {
		h.Log.Error("failed to create organization", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create organization")
		return
	}
	httpjson.Write(w, http.StatusCreated, org)
}

type updateRequest struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// HandleUpdate handles PATCH /organizations/{orgID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := orgstore.Update{
		Code:     req.Code,
		Phone:    req.Phone,
		Email:    req.Email,
		Website:  req.Website,
		IsActive: req.IsActive,
	}
	if req.Name != nil {
		clean := htmlsanitize.Strip(*req.Name)
		upd.Name = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Strip(*req.Description)
		upd.Description = &clean
	}
	if req.Address != nil {
		clean := htmlsanitize.Strip(*req.Address)
		upd.Address = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.Update(ctx, id, upd)
	if errors.Is(err, orgstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to update organization", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update organization")
		return
	}
	httpjson.Write(w, http.StatusOK, org)
}

// HandleDelete handles DELETE /organizations/{orgID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = h.Orgs.Delete(ctx, id)
	if errors.Is(err, orgstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "organization not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to delete organization", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete organization")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
