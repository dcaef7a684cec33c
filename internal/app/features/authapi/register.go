// internal/app/features/authapi/register.go
package authapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
	"github.com/dalemusser/fundops/internal/app/system/httpjson"
	"github.com/dalemusser/fundops/internal/app/system/timeouts"
	"github.com/dalemusser/fundops/internal/domain/models"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// HandleRegister handles POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and username are required")
		return
	}
	if len(req.Password) < 8 {
		httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("failed to hash password", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Email:          req.Email,
		Username:       req.Username,
		FirstName:      htmlsanitize.Strip(req.FirstName),
		LastName:       htmlsanitize.Strip(req.LastName),
		Phone:          strings.TrimSpace(req.Phone),
		HashedPassword: hash,
		IsActive:       true,
	})
	if errors.Is(err, userstore.ErrDuplicate) {
		httpjson.Error(w, http.StatusConflict, "a user with this email or username already exists")
		return
	}
	if err != nil {
		h.Log.Error("failed to create user", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	httpjson.Write(w, http.StatusCreated, u)
}
