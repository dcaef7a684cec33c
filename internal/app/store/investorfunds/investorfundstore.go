// internal/app/store/investorfunds/investorfundstore.go
package investorfundstore

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

// Store persists investor-to-fund allocations. One document per
// (investor, fund) pair, backed by a unique index.
type Store struct {
	c         *mongo.Collection
	investors *mongo.Collection
	funds     *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("investor_funds"),
		investors: db.Collection("investors"),
		funds:     db.Collection("funds"),
	}
}

var (
	ErrNotFound         = errors.New("allocation not found")
	ErrDuplicate        = errors.New("investor is already allocated to this fund")
	ErrInvestorNotFound = errors.New("investor not found")
	ErrFundNotFound     = errors.New("fund not found")
)

// Link allocates an investor to a fund after verifying both exist.
func (s *Store) Link(ctx context.Context, link models.InvestorFund) (models.InvestorFund, error) {
	if err := s.checkExists(ctx, s.investors, link.InvestorID, ErrInvestorNotFound); err != nil {
		return models.InvestorFund{}, err
	}
	if err := s.checkExists(ctx, s.funds, link.FundID, ErrFundNotFound); err != nil {
		return models.InvestorFund{}, err
	}

	now := time.Now().UTC()
	link.ID = primitive.NewObjectID()
	if link.Status == "" {
		link.Status = "active"
	}
	link.CreatedAt = now
	link.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, link); err != nil {
		if wafflemongo.IsDup(err) {
			return models.InvestorFund{}, ErrDuplicate
		}
		return models.InvestorFund{}, err
	}
	return link, nil
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

func (s *Store) ListByFund(ctx context.Context, fundID primitive.ObjectID) ([]models.InvestorFund, error) {
	return s.find(ctx, bson.M{"fund_id": fundID})
}

func (s *Store) ListByInvestor(ctx context.Context, investorID primitive.ObjectID) ([]models.InvestorFund, error) {
	return s.find(ctx, bson.M{"investor_id": investorID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.InvestorFund, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.InvestorFund
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

type Update struct {
	AllocationPercentage *float64
	CommitmentAmount     *float64
	FundedAmount         *float64
	Status               *string
}

func (s *Store) Update(ctx context.Context, investorID, fundID primitive.ObjectID, upd Update) (models.InvestorFund, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.AllocationPercentage != nil {
		set["allocation_percentage"] = *upd.AllocationPercentage
	}
	if upd.CommitmentAmount != nil {
		set["commitment_amount"] = *upd.CommitmentAmount
	}
	if upd.FundedAmount != nil {
		set["funded_amount"] = *upd.FundedAmount
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}

	var link models.InvestorFund
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"investor_id": investorID, "fund_id": fundID}, bson.M{"$set": set}, opts).Decode(&link)
	if err == mongo.ErrNoDocuments {
		return models.InvestorFund{}, ErrNotFound
	}
	if err != nil {
		return models.InvestorFund{}, err
	}
	return link, nil
}

func (s *Store) Unlink(ctx context.Context, investorID, fundID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"investor_id": investorID, "fund_id": fundID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
