// internal/app/features/organizations/handler.go

// Package organizations serves tenant administration.
package organizations

import (
	orgstore "github.com/dalemusser/fundops/internal/app/store/organizations"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Organizations.
type Handler struct {
	Orgs *orgstore.Store
	Log  *zap.Logger
}

func NewHandler(orgs *orgstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Orgs: orgs, Log: logger}
}
