// internal/domain/models/property.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a real asset held by a fund.
type Property struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name             string              `bson:"name" json:"name"`
	NameCI           string              `bson:"name_ci" json:"-"`
	Address          string              `bson:"address,omitempty" json:"address,omitempty"`
	City             string              `bson:"city,omitempty" json:"city,omitempty"`
	State            string              `bson:"state,omitempty" json:"state,omitempty"`
	Country          string              `bson:"country,omitempty" json:"country,omitempty"`
	PropertyType     string              `bson:"property_type,omitempty" json:"property_type,omitempty"` // office | retail | industrial | residential | mixed_use | hotel
	AcquisitionPrice float64             `bson:"acquisition_price,omitempty" json:"acquisition_price,omitempty"`
	CurrentValue     float64             `bson:"current_value,omitempty" json:"current_value,omitempty"`
	AcquisitionDate  *time.Time          `bson:"acquisition_date,omitempty" json:"acquisition_date,omitempty"`
	FundID           *primitive.ObjectID `bson:"fund_id,omitempty" json:"fund_id,omitempty"`
	Status           string              `bson:"status" json:"status"` // active | under_development | sold | under_contract
	SquareFootage    int                 `bson:"square_footage,omitempty" json:"square_footage,omitempty"`
	Description      string              `bson:"description,omitempty" json:"description,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
