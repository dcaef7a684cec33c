// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/fundops/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("users")}
}

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("a user with this email or username already exists")
)

// Create persists a new user. Email and username uniqueness are enforced by
// the collection's unique indexes.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.EmailCI = text.Fold(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail looks a user up case-insensitively via the folded email field.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, bson.M{"email_ci": text.Fold(email)})
}

func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) List(ctx context.Context, skip, limit int64) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}}).SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update describes a partial user update. Nil fields are left untouched.
type Update struct {
	Email       *string
	Username    *string
	FirstName   *string
	LastName    *string
	Phone       *string
	IsActive    *bool
	IsSuperuser *bool
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Email != nil {
		set["email"] = *upd.Email
		set["email_ci"] = text.Fold(*upd.Email)
	}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.FirstName != nil {
		set["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		set["last_name"] = *upd.LastName
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if upd.IsSuperuser != nil {
		set["is_superuser"] = *upd.IsSuperuser
	}

	var u models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// SetPassword stores a new password hash for the user.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"hashed_password": hash,
		"updated_at":      time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
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
