// internal/app/features/properties/manage.go
package properties

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	propertystore "github.com/dalemusser/fundops/internal/app/store/properties"
	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList handles GET .../properties.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fundID, ok := h.fundInOrg(ctx, w, r)
	if !ok {
		return
	}
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	props, err := h.Properties.List(ctx, &fundID, skip, limit)
	if err != nil {
		h.Log.Error("failed to list properties", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to list properties")
		return
	}
	httpjson.Write(w, http.StatusOK, props)
}

// ServeGet handles GET .../properties/{propertyID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, ok := h.loadFundProperty(ctx, w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

type createRequest struct {
	Name             string     `json:"name"`
	Address          string     `json:"address,omitempty"`
	City             string     `json:"city,omitempty"`
	State            string     `json:"state,omitempty"`
	Country          string     `json:"country,omitempty"`
	PropertyType     string     `json:"property_type,omitempty"`
	AcquisitionPrice float64    `json:"acquisition_price,omitempty"`
	CurrentValue     float64    `json:"current_value,omitempty"`
	AcquisitionDate  *time.Time `json:"acquisition_date,omitempty"`
	SquareFootage    int        `json:"square_footage,omitempty"`
	Description      string     `json:"description,omitempty"`
}

// HandleCreate handles POST .../properties.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	fundID, ok := h.fundInOrg(ctx, w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := h.Properties.Create(ctx, models.Property{
		Name:             htmlsanitize.Strip(req.Name),
		Address:          htmlsanitize.Strip(req.Address),
		City:             htmlsanitize.Strip(req.City),
		State:            htmlsanitize.Strip(req.State),
		Country:          htmlsanitize.Strip(req.Country),
		PropertyType:     req.PropertyType,
		AcquisitionPrice: req.AcquisitionPrice,
		CurrentValue:     req.CurrentValue,
		AcquisitionDate:  req.AcquisitionDate,
		FundID:           &fundID,
		SquareFootage:    req.SquareFootage,
		Description:      htmlsanitize.Strip(req.Description),
	})
	if err != nil {
		h.Log.Error("failed to create property", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to create property")
		return
	}
	httpjson.Write(w, http.StatusCreated, p)
}

type updateRequest struct {
	Name             *string    `json:"name,omitempty"`
	Address          *string    `json:"address,omitempty"`
	City             *string    `json:"city,omitempty"`
	State            *string    `json:"state,omitempty"`
	Country          *string    `json:"country,omitempty"`
	PropertyType     *string    `json:"property_type,omitempty"`
	AcquisitionPrice *float64   `json:"acquisition_price,omitempty"`
	CurrentValue     *float64   `json:"current_value,omitempty"`
	AcquisitionDate  *time.Time `json:"acquisition_date,omitempty"`
	Status           *string    `json:"status,omitempty"`
	SquareFootage    *int       `json:"square_footage,omitempty"`
	Description      *string    `json:"description,omitempty"`
}

// HandleUpdate handles PATCH .../properties/{propertyID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.loadFundProperty(ctx, w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := propertystore.Update{
		PropertyType:     req.PropertyType,
		AcquisitionPrice: req.AcquisitionPrice,
		CurrentValue:     req.CurrentValue,
		AcquisitionDate:  req.AcquisitionDate,
		Status:           req.Status,
		SquareFootage:    req.SquareFootage,
	}
	if req.Name != nil {
		clean := htmlsanitize.Strip(*req.Name)
		upd.Name = &clean
	}
	if req.Address != nil {
		clean := htmlsanitize.Strip(*req.Address)
		upd.Address = &clean
	}
	if req.City != nil {
		clean := htmlsanitize.Strip(*req.City)
		upd.City = &clean
	}
	if req.State != nil {
		clean := htmlsanitize.Strip(*req.State)
		upd.State = &clean
	}
	if req.Country != nil {
		clean := htmlsanitize.Strip(*req.Country)
		upd.Country = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Strip(*req.Description)
		upd.Description = &clean
	}

	updated, err := h.Properties.Update(ctx, p.ID, upd)
	if errors.Is(err, propertystore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "property not found")
		return
	}
	if err != nil {
		h.Log.Error("failed to update property", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to update property")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE .../properties/{propertyID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.loadFundProperty(ctx, w, r)
	if !ok {
		return
	}

	if err := h.Properties.Delete(ctx, p.ID); err != nil && !errors.Is(err, propertystore.ErrNotFound) {
		h.Log.Error("failed to delete property", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to delete property")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
