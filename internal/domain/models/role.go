// internal/domain/models/role.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a dynamic, administrator-manageable role document.
//
// Name is the canonical lookup key: stored lower-cased and globally unique
// across the catalog. System roles (IsSystem) are seeded at startup; their
// Name is frozen and they can never be deleted, though display name,
// permissions, and the active flag remain editable.
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	DisplayName string             `bson:"display_name" json:"display_name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Permissions map[string]bool    `bson:"permissions" json:"permissions"`
	IsSystem    bool               `bson:"is_system" json:"is_system"`
	IsActive    bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
