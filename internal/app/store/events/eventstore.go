// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
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

var (
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

func (s *Store) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	now := time.Now().UTC()
	ev.ID = primitive.NewObjectID()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var ev models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ev); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// List returns all events, soonest first.
func (s *Store) List(ctx context.Context) ([]models.Event, error) {
	return s.find(ctx, bson.M{})
}

// ListByChapter returns a chapter's events, soonest first.
func (s *Store) ListByChapter(ctx context.Context, chapterID primitive.ObjectID) ([]models.Event, error) {
	return s.find(ctx, bson.M{"chapter": chapterID})
}

// ListByAttendee returns the events a user is registered for.
func (s *Store) ListByAttendee(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.find(ctx, bson.M{"attendees": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Event
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDetails overwrites the event's descriptive fields. Callers merge
// partial input with the current document before calling.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, desc string, date time.Time, location string, chapter primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":        name,
		"description": desc,
		"date":        date,
		"location":    location,
		"chapter":     chapter,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an event by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByChapter removes all of a chapter's events. Returns the number of
// documents deleted.
func (s *Store) DeleteByChapter(ctx context.Context, chapterID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"chapter": chapterID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddAttendee registers a user for an event. The filter excludes events
// already listing the user, so double registration is detected without a
// separate read.
func (s *Store) AddAttendee(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": eventID, "attendees": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"attendees": userID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": eventID})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrAlreadyRegistered
	}
	return nil
}

// RemoveAttendee deregisters a user from an event.
func (s *Store) RemoveAttendee(ctx context.Context, eventID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": eventID, "attendees": userID},
		bson.M{
			"$pull": bson.M{"attendees": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": eventID})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrNotRegistered
	}
	return nil
}
