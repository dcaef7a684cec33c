// internal/app/store/roles/rolestore.go
package rolestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/fundops/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persisted catalog of dynamic role definitions. It also owns
// the lifecycle invariants: name uniqueness, system-role protections, and
// the in-use guard on delete.
type Store struct {
	c           *mongo.Collection
	memberships *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:           db.Collection("roles"),
		memberships: db.Collection("user_organizations"),
	}
}

var (
	ErrNotFound       = errors.New("role not found")
	ErrDuplicateName  = errors.New("a role with this name already exists")
	ErrSystemRole     = errors.New("system roles cannot be deleted")
	ErrSystemRoleName = errors.New("system role names cannot be changed")
)

// InUseError reports a delete blocked by memberships that still reference
// the role. Count tells the operator how many assignments block the delete.
type InUseError struct {
	Count int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("role is assigned to %d user(s)", e.Count)
}

// Create persists a new custom role. The name is folded to its canonical
// lower-cased form before the uniqueness check.
func (s *Store) Create(ctx context.Context, role models.Role) (models.Role, error) {
	now := time.Now().UTC()
	role.ID = primitive.NewObjectID()
	role.Name = text.Fold(role.Name)
	role.CreatedAt = now
	role.UpdatedAt = now
	if role.Permissions == nil {
		role.Permissions = map[string]bool{}
	}

	if _, err := s.c.InsertOne(ctx, role); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Role{}, ErrDuplicateName
		}
		return models.Role{}, err
	}
	return role, nil
}

// GetByID returns the role with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Role, error) {
	var role models.Role
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return models.Role{}, ErrNotFound
	}
	if err != nil {
		return models.Role{}, err
	}
	return role, nil
}

// GetByName returns the role with the given name. The lookup is
// case-insensitive: names are stored folded, so the input is folded too.
func (s *Store) GetByName(ctx context.Context, name string) (models.Role, error) {
	var role models.Role
	err := s.c.FindOne(ctx, bson.M{"name": text.Fold(name)}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return models.Role{}, ErrNotFound
	}
	if err != nil {
		return models.Role{}, err
	}
	return role, nil
}

// List returns roles sorted by name. When activeOnly is set, inactive roles
// are filtered out.
func (s *Store) List(ctx context.Context, activeOnly bool, skip, limit int64) ([]models.Role, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var roles []models.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Update describes a partial role update. Nil fields are left untouched.
type Update struct {
	Name        *string
	DisplayName *string
	Description *string
	Permissions map[string]bool
	IsActive    *bool
}

// Update applies a partial update to a role. Renaming a system role is
// rejected; every other field stays editable on system roles.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.Role, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Role{}, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := text.Fold(*upd.Name)
		if existing.IsSystem && name != existing.Name {
			return models.Role{}, ErrSystemRoleName
		}
		set["name"] = name
	}
	if upd.DisplayName != nil {
		set["display_name"] = *upd.DisplayName
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Permissions != nil {
		set["permissions"] = upd.Permissions
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var updated models.Role
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return models.Role{}, ErrNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Role{}, ErrDuplicateName
		}
		return models.Role{}, err
	}
	return updated, nil
}

// Delete removes a custom role. System roles are never deletable, and a
// role still referenced by memberships is protected with an InUseError
// carrying the blocking assignment count.
//
// The in-use check and the delete are two separate operations; a membership
// created in between can survive with a dangling role_id. Role mutation is
// a rare administrative action, so this race is accepted rather than locked
// against.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return ErrSystemRole
	}

	n, err := s.memberships.CountDocuments(ctx, bson.M{"role_id": id})
	if err != nil {
		return err
	}
	if n > 0 {
		return &InUseError{Count: n}
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
