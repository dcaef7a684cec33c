// internal/app/features/users/handler.go

// Package users serves platform-level user administration.
package users

import (
	userstore "github.com/dalemusser/fundops/internal/app/store/users"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}
