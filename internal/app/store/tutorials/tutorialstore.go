// internal/app/store/tutorials/tutorialstore.go
package tutorialstore

import (
	"context"
	"regexp"
	"time"

	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tutorials")}
}

// Filter narrows a tutorial listing. The zero value matches everything.
type Filter struct {
	Status   models.TutorialStatus // "" means any status
	Category *primitive.ObjectID
	Author   *primitive.ObjectID
	Chapter  *primitive.ObjectID
	Search   string // case-insensitive substring over title, content, keywords
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Category != nil {
		q["category"] = *f.Category
	}
	if f.Author != nil {
		q["author"] = *f.Author
	}
	if f.Chapter != nil {
		q["chapter"] = *f.Chapter
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"content": re},
			bson.M{"keywords": re},
		}
	}
	return q
}

func (s *Store) Create(ctx context.Context, t models.Tutorial) (models.Tutorial, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Tutorial{}, err
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Tutorial, error) {
	var t models.Tutorial
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Tutorial{}, err
	}
	return t, nil
}

// List returns tutorials matching the filter, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Tutorial, error) {
	cur, err := s.c.Find(ctx, f.query(),
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Tutorial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateContent overwrites the tutorial's editable fields plus its status.
// Callers merge partial input with the current document and run the
// workflow rules before calling.
func (s *Store) UpdateContent(ctx context.Context, id primitive.ObjectID, title, content string, category primitive.ObjectID, chapter *primitive.ObjectID, keywords []string, status models.TutorialStatus) error {
	set := bson.M{
		"title":      title,
		"content":    content,
		"category":   category,
		"keywords":   keywords,
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if chapter == nil {
		update["$unset"] = bson.M{"chapter": ""}
	} else {
		set["chapter"] = *chapter
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

// SetStatus moves the tutorial to the given workflow state.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TutorialStatus) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a tutorial by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByCategory returns how many tutorials reference the category, used
// to block deletion of categories still in use.
func (s *Store) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"category": categoryID})
}
