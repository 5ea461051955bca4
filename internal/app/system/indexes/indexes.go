// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup. Index creation is idempotent; problems
// are aggregated so every broken collection is visible in one failure and
// startup can fail fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, models []mongo.IndexModel) {
		if err := ensureIndexSet(ctx, db.Collection(coll), models); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "chapter", Value: 1}},
			Options: options.Index().SetName("by_chapter"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("by_role"),
		},
	})

	ensure("chapters", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_name_ci").SetUnique(true),
		},
	})

	ensure("categories", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_name").SetUnique(true),
		},
	})

	ensure("events", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "chapter", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("by_chapter_date"),
		},
		{
			Keys:    bson.D{{Key: "attendees", Value: 1}},
			Options: options.Index().SetName("by_attendee"),
		},
	})

	ensure("tutorials", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_status_created"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("by_category"),
		},
		{
			Keys:    bson.D{{Key: "author", Value: 1}},
			Options: options.Index().SetName("by_author"),
		},
		{
			Keys:    bson.D{{Key: "chapter", Value: 1}},
			Options: options.Index().SetName("by_chapter"),
		},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		// A unique index that cannot be built means duplicate data is
		// already present; surface it instead of limping along.
		zap.L().Error("ensuring indexes failed",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Strings("names", names))
	return nil
}
