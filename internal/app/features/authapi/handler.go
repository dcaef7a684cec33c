// internal/app/features/authapi/handler.go

// Package authapi serves account endpoints: registration, login, and the
// current-user profile. Token verification itself lives in system/auth.
package authapi

import (
	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"github.com/dalemusser/fundops/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for account endpoints.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Tokens: tokens, Log: logger}
}
