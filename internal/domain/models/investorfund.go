// internal/domain/models/investorfund.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvestorFund is the many-to-many allocation between investors and funds.
// Exactly one document per (investor_id, fund_id).
type InvestorFund struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvestorID           primitive.ObjectID `bson:"investor_id" json:"investor_id"`
	FundID               primitive.ObjectID `bson:"fund_id" json:"fund_id"`
	AllocationPercentage float64            `bson:"allocation_percentage" json:"allocation_percentage"`
	CommitmentAmount     float64            `bson:"commitment_amount,omitempty" json:"commitment_amount,omitempty"`
	FundedAmount         float64            `bson:"funded_amount" json:"funded_amount"`
	Status               string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
