// internal/app/features/investorfunds/manage.go
package investorfunds

import (
	"context"
	"errors"
	"net/http"

	investorfundstore "github.com/dalemusser/fundops/internal/app/store/investorfunds"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList handles GET .../funds/{fundID}/investors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fundID, ok := h.fundInOrg(ctx, w, r)
	if !ok {
		return
	}

	links, err := h.Links.ListByFund(ctx, fundID)
	if err != nil {
		h.Log.Error("failed to list allocations", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list allocations")
		return
	}
	httpjson.Write(w, http.StatusOK, links)
}

type linkRequest struct {
	InvestorID           string  `json:"investor_id"`
	AllocationPercentage float64 `json:"allocation_percentage"`
	CommitmentAmount     float64 `json:"commitment_amount,omitempty"`
}

// HandleLink handles POST .../funds/{fundID}/investors.
func (h *Handler) HandleLink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fundID, ok := h.fundInOrg(ctx, w, r)
	if !ok {
		return
	}

	var req linkRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	investorID, err := primitive.ObjectIDFromHex(req.InvestorID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid investor id")
		return
	}
	if req.AllocationPercentage < 0 || req.AllocationPercentage > 100 {
		httpjson.Error(w, http.StatusBadRequest, "allocation_percentage must be between 0 and 100")
		return
	}

	link, err := h.Links.Link(ctx, models.InvestorFund{
		InvestorID:           investorID,
		FundID:               fundID,
		AllocationPercentage: req.AllocationPercentage,
		CommitmentAmount:     req.CommitmentAmount,
	})
	switch {
	case errors.Is(err, investorfundstore.ErrInvestorNotFound):
		httpjson.Error(w, http.StatusNotFound, "investor not found")
	case errors.Is(err, investorfundstore.ErrFundNotFound):
		httpjson.Error(w, http.StatusNotFound, "fund not found")
	case errors.Is(err, investorfundstore.ErrDuplicate):
		httpjson.Error(w, http.StatusConflict, "investor is already allocated to this fund")
	case err != nil:
		h.Log.Error("failed to create allocation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create allocation")
	default:
		httpjson.Write(w, http.StatusCreated, link)
	}
}

type updateRequest struct {
	AllocationPercentage *float64 `json:"allocation_percentage,omitempty"`
	CommitmentAmount     *float64 `json:"commitment_amount,omitempty"`
	FundedAmount         *float64 `json:"funded_amount,omitempty"`
	Status               *string  `json:"status,omitempty"`
}

// HandleUpdate handles PATCH .../funds/{fundID}/investors/{investorID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fundID, ok := h.fundInOrg(ctx, w, r)
	if !ok {
		return
	}
	investorID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "investorID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid investor id")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AllocationPercentage != nil && (*req.AllocationPercentage < 0 || *req.AllocationPercentage > 100) {
		httpjson.Error(w, http.StatusBadRequest, "allocation_percentage must be between 0 and 100")
		return
	}

	link, err := h.Links.Update(ctx, investorID, fundID, investorfundstore.Update{
		AllocationPercentage: req.AllocationPercentage,
		CommitmentAmount:     req.CommitmentAmount,
		FundedAmount:         req.FundedAmount,
		Status:               req.Status,
	})
	if errors.Is(err, investorfundstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "allocation not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to update allocation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update allocation")
		return
	}
	httpjson.Write(w, http.StatusOK, link)
}

// HandleUnlink handles DELETE .../funds/{fundID}/investors/{investorID}.
func (h *Handler) HandleUnlink(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fundID, ok := h.fundInOrg(ctx, w, r)
	if !ok {
		return
	}
	investorID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "investorID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid investor id")
		return
	}

	err = h.Links.Unlink(ctx, investorID, fundID)
	if errors.Is(err, investorfundstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "allocation not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to remove allocation", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to remove allocation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
