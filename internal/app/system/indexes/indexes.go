// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureRoles(ctx, db); err != nil {
		problems = append(problems, "roles: "+err.Error())
	}
	if err := ensureUserOrganizations(ctx, db); err != nil {
		problems = append(problems, "user_organizations: "+err.Error())
	}
	if err := ensureFunds(ctx, db); err != nil {
		problems = append(problems, "funds: "+err.Error())
	}
	if err := ensureInvestors(ctx, db); err != nil {
		problems = append(problems, "investors: "+err.Error())
	}
	if err := ensureProperties(ctx, db); err != nil {
		problems = append(problems, "properties: "+err.Error())
	}
	if err := ensureInvestorFunds(ctx, db); err != nil {
		problems = append(problems, "investor_funds: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()

		// Load existing indexes for this collection.
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
			cur.Close(ctx)
		}

		if ex, ok := existing[desiredSig]; ok && sameBoolPtr(desiredUnique, ex.Unique) {
			// Same keys, same options: reuse.
			continue
		} else if ok {
			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot build unique index over existing duplicate values: %v", coll.Name(), desiredName, err))
				continue
			}
			errs = append(errs, fmt.Sprintf("%s(%s): create failed: %v", coll.Name(), desiredName, err))
			continue
		}

		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

/* -------------------------------------------------------------------------- */
/* Per-collection index sets                                                  */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("uniq_email"), Unique: boolPtr(true)},
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("uniq_username"), Unique: boolPtr(true)},
		},
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("email_ci")},
		},
	})
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("organizations"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("name_ci")},
		},
	})
}

func ensureRoles(ctx context.Context, db *mongo.Database) error {
	// The unique name index is the backstop for the catalog-wide name
	// uniqueness invariant; the store surfaces violations as ErrDuplicateName.
	return ensureIndexSet(ctx, db.Collection("roles"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("uniq_name"), Unique: boolPtr(true)},
		},
	})
}

func ensureUserOrganizations(ctx context.Context, db *mongo.Database) error {
	// One membership per (user, organization).
	return ensureIndexSet(ctx, db.Collection("user_organizations"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "organization_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("uniq_user_org"), Unique: boolPtr(true)},
		},
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("organization_id")},
		},
		{
			Keys:    bson.D{{Key: "role_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("role_id")},
		},
	})
}

func ensureFunds(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("funds"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("organization_id")},
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("name_ci")},
		},
	})
}

func ensureInvestors(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("investors"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("organization_id")},
		},
		{
			Keys:    bson.D{{Key: "fund_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("fund_id")},
		},
	})
}

func ensureProperties(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("properties"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fund_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("fund_id")},
		},
	})
}

func ensureInvestorFunds(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("investor_funds"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "investor_id", Value: 1}, {Key: "fund_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("uniq_investor_fund"), Unique: boolPtr(true)},
		},
		{
			Keys:    bson.D{{Key: "fund_id", Value: 1}},
			Options: &options.IndexOptions{Name: strPtr("fund_id")},
		},
	})
}
