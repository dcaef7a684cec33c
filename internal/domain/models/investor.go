// internal/domain/models/investor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Investor is a capital source tracked by an organization. FundID is a
// convenience pointer to the investor's primary fund; the investor_funds
// collection holds the full many-to-many allocation picture.
type Investor struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name             string              `bson:"name" json:"name"`
	NameCI           string              `bson:"name_ci" json:"-"`
	Email            string              `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string              `bson:"phone,omitempty" json:"phone,omitempty"`
	InvestorType     string              `bson:"investor_type,omitempty" json:"investor_type,omitempty"` // institutional | individual | family_office | pension_fund | endowment | sovereign_wealth
	CommitmentAmount float64             `bson:"commitment_amount,omitempty" json:"commitment_amount,omitempty"`
	FundedAmount     float64             `bson:"funded_amount" json:"funded_amount"`
	OrganizationID   *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	FundID           *primitive.ObjectID `bson:"fund_id,omitempty" json:"fund_id,omitempty"`
	Status           string              `bson:"status" json:"status"`
	Address          string              `bson:"address,omitempty" json:"address,omitempty"`
	City             string              `bson:"city,omitempty" json:"city,omitempty"`
	State            string              `bson:"state,omitempty" json:"state,omitempty"`
	Country          string              `bson:"country,omitempty" json:"country,omitempty"`
	IsActive         bool                `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
