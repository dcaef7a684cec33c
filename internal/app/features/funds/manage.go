// internal/app/features/funds/manage.go
package funds

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	fundstore "github.com/dalemusser/fundops/internal/app/store/funds"
	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /organizations/{orgID}/funds.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	funds, err := h.Funds.List(ctx, &orgID, skip, limit)
	if err != nil {
		h.Log.Error("failed to list funds", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list funds")
		return
	}
	httpjson.Write(w, http.StatusOK, funds)
}

// ServeGet handles GET /organizations/{orgID}/funds/{fundID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fund, ok := h.loadOrgFund(ctx, w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, fund)
}

type createRequest struct {
	Name        string  `json:"name"`
	FundType    string  `json:"fund_type,omitempty"`
	TargetSize  float64 `json:"target_size,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	VintageYear int     `json:"vintage_year,omitempty"`
	Status      string  `json:"status,omitempty"`
	Description string  `json:"description,omitempty"`
}

// HandleCreate handles POST /organizations/{orgID}/funds.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}

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

	fund, err := h.Funds.Create(ctx, models.Fund{
		Name:           htmlsanitize.Strip(req.Name),
		FundType:       req.FundType,
		TargetSize:     req.TargetSize,
		Currency:       req.Currency,
		VintageYear:    req.VintageYear,
		Status:         req.Status,
		Description:    htmlsanitize.Strip(req.Description),
		OrganizationID: &orgID,
	})
	if err != nil {
		h.Log.Error("failed to create fund", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create fund")
		return
	}
	httpjson.Write(w, http.StatusCreated, fund)
}

type updateRequest struct {
	Name        *string  `json:"name,omitempty"`
	FundType    *string  `json:"fund_type,omitempty"`
	TargetSize  *float64 `json:"target_size,omitempty"`
	CurrentSize *float64 `json:"current_size,omitempty"`
	Currency    *string  `json:"currency,omitempty"`
	VintageYear *int     `json:"vintage_year,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// HandleUpdate handles PATCH /organizations/{orgID}/funds/{fundID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fund, ok := h.loadOrgFund(ctx, w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := fundstore.Update{
		FundType:    req.FundType,
		TargetSize:  req.TargetSize,
		CurrentSize: req.CurrentSize,
		Currency:    req.Currency,
		VintageYear: req.VintageYear,
		Status:      req.Status,
	}
	if req.Name != nil {
		clean := htmlsanitize.Strip(*req.Name)
		upd.Name = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Strip(*req.Description)
		upd.Description = &clean
	}

	updated, err := h.Funds.Update(ctx, fund.ID, upd)
	if errors.Is(err, fundstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "fund not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to update fund", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update fund")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /organizations/{orgID}/funds/{fundID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fund, ok := h.loadOrgFund(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Funds.Delete(ctx, fund.ID); err != nil && !errors.Is(err, fundstore.ErrNotFound) {
		h.Log.Error("failed to delete fund", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete fund")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
