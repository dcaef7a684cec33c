// internal/app/features/investorfunds/handler.go

// Package investorfunds serves the allocation links between investors and
// funds, mounted under /organizations/{orgID}/funds/{fundID}/investors.
package investorfunds

import (
	"context"
	"errors"
	"net/http"

	fundstore "github.com/dalemusser/fundops/internal/app/store/funds"
	investorfundstore "github.com/dalemusser/fundops/internal/app/store/investorfunds"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Links *investorfundstore.Store
	Funds *fundstore.Store
	Log   *zap.Logger
}

func NewHandler(links *investorfundstore.Store, funds *fundstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Links: links, Funds: funds, Log: logger}
}

func (h *Handler) fundInOrg(ctx context.Context, w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return primitive.NilObjectID, false
	}
	fundID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "fundID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid fund id")
		return primitive.NilObjectID, false
	}

	fund, err := h.Funds.GetByID(ctx, fundID)
	if errors.Is(err, fundstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "fund not found")
		return primitive.NilObjectID, false
	}
	if err != nil {
		h.Log.Error("failed to load fund", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load fund")
		return primitive.NilObjectID, false
	}
	if fund.OrganizationID == nil || *fund.OrganizationID != orgID {
		httpjson.Error(w, http.StatusNotFound, "fund not found")
		return primitive.NilObjectID, false
	}
	return fund.ID, true
}
