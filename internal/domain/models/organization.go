// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is the tenant boundary. Funds, investors, properties, and
// memberships all hang off an organization id.
type Organization struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Code        string             `bson:"code,omitempty" json:"code,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	IsActive    bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
