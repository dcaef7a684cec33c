// internal/app/features/funds/handler.go

// Package funds serves fund management inside one organization. Every route
// is mounted under /organizations/{orgID}/funds and checked against that
// organization, so a fund id from another tenant reads as not found.
package funds

import (
	"context"
	"errors"
	"net/http"

	fundstore "github.com/dalemusser/fundops/internal/app/store/funds"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Funds *fundstore.Store
	Log   *zap.Logger
}

func NewHandler(funds *fundstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Funds: funds, Log: logger}
}

// loadOrgFund fetches a fund by the id URL parameter and verifies it
// belongs to the organization in the URL. Cross-tenant ids surface as not
// found, never as forbidden, so ids cannot be probed.
func (h *Handler) loadOrgFund(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Fund, bool) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "orgID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid organization id")
		return models.Fund{}, false
	}
	fundID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "fundID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid fund id")
		return models.Fund{}, false
	}

	fund, err := h.Funds.GetByID(ctx, fundID)
	if errors.Is(err, fundstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "fund not found")
		return models.Fund{}, false
	}
	if err != nil {
		h.Log.Error("failed to load fund", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load fund")
		return models.Fund{}, false
	}
	if fund.OrganizationID == nil || *fund.OrganizationID != orgID {
		httpjson.Error(w, http.StatusNotFound, "fund not found")
		return models.Fund{}, false
	}
	return fund, true
}
