// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the root identity record.
//
// NOTE:
//   - Chapter membership is a reference on the user (`chapter`), not an
//     embedded member list on Chapter. "Members of chapter X" is a query
//     on the users collection.
//   - VouchCount must always equal len(VouchedBy); the users store keeps
//     both in a single document update so the pair can never diverge.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"` // unique, lowercased
	Password string             `bson:"password" json:"-"`  // bcrypt hash, never serialized
	Role     Role               `bson:"role" json:"role"`

	Chapter    *primitive.ObjectID  `bson:"chapter,omitempty" json:"chapter,omitempty"`
	VouchCount int                  `bson:"vouch_count" json:"vouchCount"`
	VouchedBy  []primitive.ObjectID `bson:"vouched_by,omitempty" json:"vouchedBy,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// InChapter reports whether the user currently belongs to the given chapter.
func (u *User) InChapter(chapterID primitive.ObjectID) bool {
	return u.Chapter != nil && *u.Chapter == chapterID
}
