// internal/app/features/properties/handler.go

// Package properties serves the real-asset inventory of one fund. Routes
// are mounted under /organizations/{orgID}/funds/{fundID}/properties; the
// fund must belong to the organization and the property to the fund, or
// the id reads as not found.
package properties

import (
	"context"
	"errors"
	"net/http"

	fundstore "github.com/dalemusser/fundops/internal/app/store/funds"
	propertystore "github.com/dalemusser/fundops/internal/app/store/properties"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Properties *propertystore.Store
	Funds      *fundstore.Store
	Log        *zap.Logger
}

func NewHandler(properties *propertystore.Store, funds *fundstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Properties: properties, Funds: funds, Log: logger}
}

// fundInOrg verifies the fund in the URL belongs to the organization in the
// URL and returns its id.
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

// loadFundProperty fetches the property in the URL and verifies it belongs
// to the fund.
func (h *Handler) loadFundProperty(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Property, bool) {
	fundID, ok := h.fundInOrg(ctx, w, r)
	if !ok {
		return models.Property{}, false
	}
	propID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "propertyID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid property id")
		return models.Property{}, false
	}

	p, err := h.Properties.GetByID(ctx, propID)
	if errors.Is(err, propertystore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "property not found")
		return models.Property{}, false
	}
	if err != nil {
		h.Log.Error("failed to load property", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load property")
		return models.Property{}, false
	}
	if p.FundID == nil || *p.FundID != fundID {
		httpjson.Error(w, http.StatusNotFound, "property not found")
		return models.Property{}, false
	}
	return p, true
}
