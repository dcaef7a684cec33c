// internal/domain/models/fund.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fund is an investment vehicle owned by an organization.
type Fund struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	NameCI         string              `bson:"name_ci" json:"-"`
	FundType       string              `bson:"fund_type,omitempty" json:"fund_type,omitempty"` // real_estate | private_equity | hedge_fund | venture_capital | infrastructure
	TargetSize     float64             `bson:"target_size,omitempty" json:"target_size,omitempty"`
	CurrentSize    float64             `bson:"current_size" json:"current_size"`
	Currency       string              `bson:"currency" json:"currency"`
	VintageYear    int                 `bson:"vintage_year,omitempty" json:"vintage_year,omitempty"`
	Status         string              `bson:"status" json:"status"` // active | closed | fundraising
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
