// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func optionsSortByName() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
}

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	ErrAlreadyVouched = errors.New("voucher has already vouched for this user")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user. Email must already be normalized (lowercased,
// trimmed) by the caller; the unique index enforces one account per address.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// FetchByID is GetByID with a pointer result, satisfying the auth
// middleware's UserFetcher interface.
func (s *Store) FetchByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// List returns all users sorted by name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, optionsSortByName())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByChapter returns the members of a chapter sorted by name.
func (s *Store) ListByChapter(ctx context.Context, chapterID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"chapter": chapterID}, optionsSortByName())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByIDs returns the users whose IDs appear in ids. Missing IDs are
// silently absent from the result.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, optionsSortByName())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetName updates the user's display name.
func (s *Store) SetName(ctx context.Context, id primitive.ObjectID, name string) error {
	return s.setFields(ctx, id, bson.M{"name": name})
}

// SetRole updates the user's role.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	return s.setFields(ctx, id, bson.M{"role": role})
}

// SetChapter assigns or clears (nil) the user's chapter membership.
func (s *Store) SetChapter(ctx context.Context, id primitive.ObjectID, chapter *primitive.ObjectID) error {
	if chapter == nil {
		return s.unsetChapter(ctx, bson.M{"_id": id})
	}
	return s.setFields(ctx, id, bson.M{"chapter": *chapter})
}

// SetRoleAndChapter updates role and chapter together, used by lead
// assignment so a promoted student never exists with the old role and the
// new chapter split across writes.
func (s *Store) SetRoleAndChapter(ctx context.Context, id primitive.ObjectID, role models.Role, chapter primitive.ObjectID) error {
	return s.setFields(ctx, id, bson.M{"role": role, "chapter": chapter})
}

// ClearChapterIf clears the user's chapter only when it still equals
// chapterID, so a concurrent reassignment is not undone.
func (s *Store) ClearChapterIf(ctx context.Context, id, chapterID primitive.ObjectID) error {
	return s.unsetChapter(ctx, bson.M{"_id": id, "chapter": chapterID})
}

// ClearChapterForAll removes chapter membership from every user in the
// given chapter. Returns the number of users updated.
func (s *Store) ClearChapterForAll(ctx context.Context, chapterID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx, bson.M{"chapter": chapterID}, bson.M{
		"$unset": bson.M{"chapter": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// SetPassword stores a new password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return s.setFields(ctx, id, bson.M{"password": hash})
}

// AddVouch records that voucher vouched for target. The filter excludes
// documents already carrying the voucher, so the push and the counter
// increment happen exactly once per voucher in a single document update;
// vouch_count can never drift from len(vouched_by).
func (s *Store) AddVouch(ctx context.Context, target, voucher primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": target, "vouched_by": bson.M{"$ne": voucher}},
		bson.M{
			"$push": bson.M{"vouched_by": voucher},
			"$inc":  bson.M{"vouch_count": 1},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the target does not exist or the voucher is already on it.
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": target})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrAlreadyVouched
	}
	return nil
}

func (s *Store) setFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) unsetChapter(ctx context.Context, filter bson.M) error {
	_, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$unset": bson.M{"chapter": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
