// internal/app/features/investors/handler.go

// Package investors serves investor management inside one organization.
package investors

import (
	"context"
	"errors"
	"net/http"

	investorstore "github.com/dalemusser/fundops/internal/app/store/investors"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Investors *investorstore.Store
	Log       *zap.Logger
}

func NewHandler(investors *investorstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Investors: investors, Log: logger}
}

// loadOrgInvestor fetches an investor and verifies it belongs to the
// organization in the URL. Cross-tenant ids read as not found.
func (h *Handler) loadOrgInvestor(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Investor, bool) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return models.Investor{}, false
	}
	invID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "investorID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid investor id")
		return models.Investor{}, false
	}

	inv, err := h.Investors.GetByID(ctx, invID)
	if errors.Is(err, investorstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "investor not found")
		return models.Investor{}, false
	}
	if err != nil {
		h.Log.Error("failed to load investor", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load investor")
		return models.Investor{}, false
	}
	if inv.OrganizationID == nil || *inv.OrganizationID != orgID {
		httpjson.Error(w, http.StatusNotFound, "investor not found")
		return models.Investor{}, false
	}
	return inv, true
}
