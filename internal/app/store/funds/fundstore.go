// internal/app/store/funds/fundstore.go
package fundstore

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
	return &Store{c: db.Collection("funds")}
}

var ErrNotFound = errors.New("fund not found")

func (s *Store) Create(ctx context.Context, fund models.Fund) (models.Fund, error) {
	now := time.Now().UTC()
	fund.ID = primitive.NewObjectID()
	fund.NameCI = text.Fold(fund.Name)
	if fund.Currency == "" {
		fund.Currency = "USD"
	}
	if fund.Status == "" {
		fund.Status = "active"
	}
	fund.CreatedAt = now
	fund.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, fund); err != nil {
		return models.Fund{}, err
	}
	return fund, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Fund, error) {
	var fund models.Fund
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&fund)
	if err == mongo.ErrNoDocuments {
		return models.Fund{}, ErrNotFound
	}
	if err != nil {
		return models.Fund{}, err
	}
	return fund, nil
}

// List returns funds, optionally restricted to one organization.
func (s *Store) List(ctx context.Context, orgID *primitive.ObjectID, skip, limit int64) ([]models.Fund, error) {
	filter := bson.M{}
	if orgID != nil {
		filter["organization_id"] = *orgID
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

	var funds []models.Fund
	if err := cur.All(ctx, &funds); err != nil {
		return nil, err
	}
	return funds, nil
}

type Update struct {
	Name        *string
	FundType    *string
	TargetSize  *float64
	CurrentSize *float64
	Currency    *string
	VintageYear *int
	Status      *string
	Description *string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Fund, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.FundType != nil {
		set["fund_type"] = *upd.FundType
	}
	if upd.TargetSize != nil {
		set["target_size"] = *upd.TargetSize
	}
	if upd.CurrentSize != nil {
		set["current_size"] = *upd.CurrentSize
	}
	if upd.Currency != nil {
		set["currency"] = *upd.Currency
	}
	if upd.VintageYear != nil {
		set["vintage_year"] = *upd.VintageYear
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}

	var fund models.Fund
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&fund)
	if err == mongo.ErrNoDocuments {
		return models.Fund{}, ErrNotFound
	}
	if err != nil {
		return models.Fund{}, err
	}
	return fund, nil
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
