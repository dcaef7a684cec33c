// internal/app/store/properties/propertystore.go
package propertystore

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
	return &Store{c: db.Collection("properties")}
}

var ErrNotFound = errors.New("property not found")

func (s *Store) Create(ctx context.Context, p models.Property) (models.Property, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	if p.Status == "" {
		p.Status = "active"
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Property{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Property, error) {
	var p models.Property
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Property{}, ErrNotFound
	}
	if err != nil {
		return models.Property{}, err
	}
	return p, nil
}

// List returns properties, optionally restricted to one fund.
func (s *Store) List(ctx context.Context, fundID *primitive.ObjectID, skip, limit int64) ([]models.Property, error) {
	filter := bson.M{}
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

	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, err
	}
	return props, nil
}

type Update struct {
	Name             *string
	Address          *string
	City             *string
	State            *string
	Country          *string
	PropertyType     *string
	AcquisitionPrice *float64
	CurrentValue     *float64
	AcquisitionDate  *time.Time
	FundID           *primitive.ObjectID
	Status           *string
	SquareFootage    *int
	Description      *string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Property, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
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
	if upd.PropertyType != nil {
		set["property_type"] = *upd.PropertyType
	}
	if upd.AcquisitionPrice != nil {
		set["acquisition_price"] = *upd.AcquisitionPrice
	}
	if upd.CurrentValue != nil {
		set["current_value"] = *upd.CurrentValue
	}
	if upd.AcquisitionDate != nil {
		set["acquisition_date"] = *upd.AcquisitionDate
	}
	if upd.FundID != nil {
		set["fund_id"] = *upd.FundID
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.SquareFootage != nil {
		set["square_footage"] = *upd.SquareFootage
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}

	var p models.Property
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Property{}, ErrNotFound
	}
	if err != nil {
		return models.Property{}, err
	}
	return p, nil
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
