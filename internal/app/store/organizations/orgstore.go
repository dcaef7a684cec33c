// internal/app/store/organizations/orgstore.go
package orgstore

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
	c           *mongo.Collection
	memberships *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("organizations"),
		memberships: db.Collection("user_organizations"),
	}
}

var ErrNotFound = errors.New("organization not found")

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = text.Fold(org.Name)
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, org); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) List(ctx context.Context, activeOnly bool, skip, limit int64) ([]models.Organization, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
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

	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update describes a partial organization update. Nil fields are left
// untouched.
type Update struct {
	Name        *string
	Code        *string
	Description *string
	Address     *string
	Phone       *string
	Email       *string
	Website     *string
	IsActive    *bool
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Organization, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Code != nil {
		set["code"] = *upd.Code
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Website != nil {
		set["website"] = *upd.Website
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var org models.Organization
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// Delete removes the organization and any memberships pointing at it so no
// orphaned assignments survive.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = s.memberships.DeleteMany(ctx, bson.M{"organization_id": id})
	return err
}
