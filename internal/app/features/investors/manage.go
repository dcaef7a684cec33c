// internal/app/features/investors/manage.go
package investors

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	investorstore "github.com/dalemusser/fundops/internal/app/store/investors"
	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET /organizations/{orgID}/investors. ?fund_id= narrows
// to investors whose primary fund matches.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	var fundID *primitive.ObjectID
	if raw := r.URL.Query().Get("fund_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid fund id")
			return
		}
		fundID = &id
	}
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	investors, err := h.Investors.List(ctx, &orgID, fundID, skip, limit)
	if err != nil {
		h.Log.Error("failed to list investors", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list investors")
		return
	}
	httpjson.Write(w, http.StatusOK, investors)
}

// ServeGet handles GET /organizations/{orgID}/investors/{investorID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	inv, ok := h.loadOrgInvestor(ctx, w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, inv)
}

type createRequest struct {
	Name             string  `json:"name"`
	Email            string  `json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	InvestorType     string  `json:"investor_type,omitempty"`
	CommitmentAmount float64 `json:"commitment_amount,omitempty"`
	FundID           string  `json:"fund_id,omitempty"`
	Address          string  `json:"address,omitempty"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	Country          string  `json:"country,omitempty"`
}

// HandleCreate handles POST /organizations/{orgID}/investors.
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

	inv := models.Investor{
		Name:             htmlsanitize.Strip(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		InvestorType:     req.InvestorType,
		CommitmentAmount: req.CommitmentAmount,
		OrganizationID:   &orgID,
		Address:          htmlsanitize.Strip(req.Address),
		City:             htmlsanitize.Strip(req.City),
		State:            htmlsanitize.Strip(req.State),
		Country:          htmlsanitize.Strip(req.Country),
		IsActive:         true,
	}
	if req.FundID != "" {
		fundID, err := primitive.ObjectIDFromHex(req.FundID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid fund id")
			return
		}
		inv.FundID = &fundID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Investors.Create(ctx, inv)
	if err != nil {
		h.Log.Error("failed to create investor", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create investor")
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

type updateRequest struct {
	Name             *string  `json:"name,omitempty"`
	Email            *string  `json:"email,omitempty"`
	Phone            *string  `json:"phone,omitempty"`
	InvestorType     *string  `json:"investor_type,omitempty"`
	CommitmentAmount *float64 `json:"commitment_amount,omitempty"`
	FundedAmount     *float64 `json:"funded_amount,omitempty"`
	FundID           *string  `json:"fund_id,omitempty"`
	Status           *string  `json:"status,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
}

// HandleUpdate handles PATCH /organizations/{orgID}/investors/{investorID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, ok := h.loadOrgInvestor(ctx, w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := investorstore.Update{
		Email:            req.Email,
		Phone:            req.Phone,
		InvestorType:     req.InvestorType,
		CommitmentAmount: req.CommitmentAmount,
		FundedAmount:     req.FundedAmount,
		Status:           req.Status,
		IsActive:         req.IsActive,
	}
	if req.Name != nil {
		clean := htmlsanitize.Strip(*req.Name)
		upd.Name = &clean
	}
	if req.FundID != nil {
		fundID, err := primitive.ObjectIDFromHex(*req.FundID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid fund id")
			return
		}
		upd.FundID = &fundID
	}

	updated, err := h.Investors.Update(ctx, inv.ID, upd)
	if errors.Is(err, investorstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "investor not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to update investor", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update investor")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /organizations/{orgID}/investors/{investorID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, ok := h.loadOrgInvestor(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Investors.Delete(ctx, inv.ID); err != nil && !errors.Is(err, investorstore.ErrNotFound) {
		h.Log.Error("failed to delete investor", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete investor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
