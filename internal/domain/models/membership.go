// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership is the authoritative join between users and organizations.
// Exactly one document per (user_id, organization_id); a user holds at most
// one role per organization.
//
// The role is referenced two ways during the static-to-dynamic migration:
//   - RoleID points at a document in the roles collection (current form).
//   - Role carries the role name as a plain string (legacy form). Records
//     that predate the roles collection have only this field, and its value
//     may be a static role key with no backing document.
//
// At least one of the two must resolve to a permission set, or the
// membership grants no capabilities at all.
type Membership struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID  `bson:"user_id" json:"user_id"`
	OrganizationID primitive.ObjectID  `bson:"organization_id" json:"organization_id"`
	RoleID         *primitive.ObjectID `bson:"role_id,omitempty" json:"role_id,omitempty"`
	Role           string              `bson:"role,omitempty" json:"role,omitempty"`
	IsPrimary      bool                `bson:"is_primary" json:"is_primary"`

	JoinedAt  time.Time `bson:"joined_at" json:"joined_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
