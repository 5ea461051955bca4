// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a scheduled gathering hosted by a chapter. The organizer must be
// the chapter's lead or an admin at creation time; that is not re-validated
// afterward (the organizer may later lose the lead role).
type Event struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Date        time.Time            `bson:"date" json:"date"`
	Location    string               `bson:"location" json:"location"`
	Chapter     primitive.ObjectID   `bson:"chapter" json:"chapter"`
	Organizer   primitive.ObjectID   `bson:"organizer" json:"organizer"`
	Attendees   []primitive.ObjectID `bson:"attendees,omitempty" json:"attendees,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
