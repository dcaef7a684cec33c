// internal/app/store/investors/investorstore.go
package investorstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("investors")}
}

var ErrNotFound = errors.New("investor not found")

func (s *Store) Create(ctx context.Context, inv models.Investor) (models.Investor, error) {
	now := time.Now().UTC()
	inv.ID = primitive.NewObjectID()
	inv.NameCI = text.Fold(inv.Name)
	if inv.Status == "" {
		inv.Status = "active"
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.Investor{}, err
	}
	return inv, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Investor, error) {
	var inv models.Investor
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return models.Investor{}, ErrNotFound
	}
	if err != nil {
		return models.Investor{}, err
	}
	return inv, nil
}

// List returns investors, optionally restricted to one organization or one
// primary fund.
func (s *Store) List(ctx context.Context, orgID, fundID *primitive.ObjectID, skip, limit int64) ([]models.Investor, error) {
	filter := bson.M{}
	if orgID != nil {
		filter["organization_id"] = *orgID
	}
	if fundID != nil {
		filter["fund_id"] = *fundID
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var investors []models.Investor
	if err := cur.All(ctx, &investors); err != nil {
		return nil, err
	}
	return investors, nil
}

type Update struct {
	Name             *string
	Email            *string
	Phone            *string
	InvestorType     *string
	CommitmentAmount *float64
	FundedAmount     *float64
	FundID           *primitive.ObjectID
	Status           *string
	Address          *string
	City             *string
	State            *string
	Country          *string
	IsActive         *bool
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Investor, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.InvestorType != nil {
		set["investor_type"] = *upd.InvestorType
	}
	if upd.CommitmentAmount != nil {
		set["commitment_amount"] = *upd.CommitmentAmount
	}
	if upd.FundedAmount != nil {
		set["funded_amount"] = *upd.FundedAmount
	}
	if upd.FundID != nil {
		set["fund_id"] = *upd.FundID
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.City != nil {
		set["city"] = *upd.City
	}
	if upd.State != nil {
		set["state"] = *upd.State
	}
	if upd.Country != nil {
		set["country"] = *upd.Country
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var inv models.Investor
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&inv)
	if err == mongo.ErrNoDocuments {
		return models.Investor{}, ErrNotFound
	}
	if err != nil {
		return models.Investor{}, err
	}
	return inv, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
