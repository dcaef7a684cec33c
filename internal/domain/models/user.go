// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a platform identity. Per-organization roles are not embedded here;
// use the user_organizations collection to discover a user's memberships.
//
// IsSuperuser marks a platform admin: it bypasses every organization-scoped
// authorization check and is settable only by another platform admin.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	EmailCI        string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	Username       string             `bson:"username" json:"username"`
	FirstName      string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName       string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	IsSuperuser    bool               `bson:"is_superuser" json:"is_superuser"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
