// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/fundops/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists user-organization memberships. One document per
// (user, organization) pair; the unique index backs that invariant.
type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
	orgs  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("user_organizations"),
		users: db.Collection("users"),
		orgs:  db.Collection("organizations"),
	}
}

var (
	ErrNotFound             = errors.New("membership not found")
	ErrDuplicate            = errors.New("user is already a member of this organization")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
)

// Assign creates a membership after verifying the user and organization
// exist. A second assignment for the same pair fails with ErrDuplicate.
func (s *Store) Assign(ctx context.Context, m models.Membership) (models.Membership, error) {
	if err := s.checkExists(ctx, s.users, m.UserID, ErrUserNotFound); err != nil {
		return models.Membership{}, err
	}
	if err := s.checkExists(ctx, s.orgs, m.OrganizationID, ErrOrganizationNotFound); err != nil {
		return models.Membership{}, err
	}

	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.JoinedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Membership{}, ErrDuplicate
		}
		return models.Membership{}, err
	}
	return m, nil
}

func (s *Store) checkExists(ctx context.Context, c *mongo.Collection, id primitive.ObjectID, missing error) error {
	n, err := c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

// Get returns the membership for a (user, organization) pair.
func (s *Store) Get(ctx context.Context, userID, orgID primitive.ObjectID) (models.Membership, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "organization_id": orgID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Membership{}, ErrNotFound
	}
	if err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

// GetForUser returns every membership the user holds, across organizations.
func (s *Store) GetForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Membership, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

// ListByOrganization returns every membership in one organization.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.Membership, error) {
	return s.find(ctx, bson.M{"organization_id": orgID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Membership, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Membership
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRole changes the role on an existing membership. Both the legacy
// name field and the role_id reference are rewritten so the record never
// carries a name and an id that disagree.
func (s *Store) UpdateRole(ctx context.Context, userID, orgID primitive.ObjectID, roleName string, roleID *primitive.ObjectID) (models.Membership, error) {
	update := bson.M{
		"$set": bson.M{
			"role":       roleName,
			"updated_at": time.Now().UTC(),
		},
	}
	if roleID != nil {
		update["$set"].(bson.M)["role_id"] = *roleID
	} else {
		update["$unset"] = bson.M{"role_id": ""}
	}

	var m models.Membership
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "organization_id": orgID}, update, opts).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.Membership{}, ErrNotFound
	}
	if err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

// Remove deletes a membership by its id.
func (s *Store) Remove(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveByUserOrg deletes the membership for a (user, organization) pair.
func (s *Store) RemoveByUserOrg(ctx context.Context, userID, orgID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "organization_id": orgID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByRoleID reports how many memberships reference a dynamic role.
func (s *Store) CountByRoleID(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role_id": roleID})
}
