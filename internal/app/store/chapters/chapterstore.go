// internal/app/store/chapters/chapterstore.go
package chapterstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateChapterName = errors.New("a chapter with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chapters")}
}

func (s *Store) Create(ctx context.Context, ch models.Chapter) (models.Chapter, error) {
	now := time.Now().UTC()
	ch.ID = primitive.NewObjectID()
	ch.NameCI = text.Fold(ch.Name)
	ch.CreatedAt = now
	ch.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ch); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Chapter{}, ErrDuplicateChapterName
		}
		return models.Chapter{}, err
	}
	return ch, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Chapter, error) {
	var ch models.Chapter
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		return models.Chapter{}, err
	}
	return ch, nil
}

// List returns all chapters sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Chapter, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Chapter
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInfo changes the chapter's name and/or description. An empty name
// leaves the current name in place; description always overwrites, so it
// can be cleared.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc string) error {
	set := bson.M{
		"description": desc,
		"updated_at":  time.Now().UTC(),
	}
	if strings.TrimSpace(name) != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateChapterName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetLead points the chapter's lead at userID, or clears it when nil.
// Callers go through the leadassign store, which keeps the matching user
// document in step.
func (s *Store) SetLead(ctx context.Context, id primitive.ObjectID, userID *primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if userID == nil {
		update["$unset"] = bson.M{"chapter_lead": ""}
	} else {
		update["$set"].(bson.M)["chapter_lead"] = *userID
	}
	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ClearLeadIf removes the chapter's lead only when it still points at
// userID. A lead that was concurrently replaced is left alone.
func (s *Store) ClearLeadIf(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "chapter_lead": userID},
		bson.M{
			"$unset": bson.M{"chapter_lead": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// Delete removes a chapter by ID. Returns the number of documents deleted
// (0 or 1). Cascading cleanup of members and events is the leadassign
// store's job.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
