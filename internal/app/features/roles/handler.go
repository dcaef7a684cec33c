// internal/app/features/roles/handler.go

// Package roles serves the dynamic role catalog: listing, creation,
// updates, deletion, and seeding of the default system roles.
package roles

import (
	rolestore "github.com/dalemusser/fundops/internal/app/store/roles"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for role management.
type Handler struct {
	Roles *rolestore.Store
	Log   *zap.Logger
}

func NewHandler(roles *rolestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Roles: roles, Log: logger}
}
