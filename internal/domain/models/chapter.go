// internal/domain/models/chapter.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chapter is a named local group. At most one user acts as its lead.
//
// Invariant: if ChapterLead is set to user U, then U.Chapter must equal
// this chapter's ID. The leadassign store is the only writer of the pair.
type Chapter struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	NameCI      string              `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string              `bson:"description" json:"description"`
	ChapterLead *primitive.ObjectID `bson:"chapter_lead,omitempty" json:"chapterLead,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// LedBy reports whether the chapter's lead field currently points at userID.
func (c *Chapter) LedBy(userID primitive.ObjectID) bool {
	return c.ChapterLead != nil && *c.ChapterLead == userID
}
