// internal/domain/models/tutorial.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TutorialStatus is the three-state approval workflow gating public
// visibility of user-submitted content.
type TutorialStatus string

const (
	StatusPending  TutorialStatus = "pending"
	StatusApproved TutorialStatus = "approved"
	StatusRejected TutorialStatus = "rejected"
)

// Valid reports whether s is one of the known workflow states.
func (s TutorialStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Tutorial is published content. The author reference is immutable after
// creation; status transitions are owned by the tutorial workflow.
type Tutorial struct {
	ID       primitive.ObjectID  `bson:"_id" json:"id"`
	Title    string              `bson:"title" json:"title"`
	Content  string              `bson:"content" json:"content"`
	Category primitive.ObjectID  `bson:"category" json:"category"`
	Author   primitive.ObjectID  `bson:"author" json:"author"`
	Status   TutorialStatus      `bson:"status" json:"status"`
	Chapter  *primitive.ObjectID `bson:"chapter,omitempty" json:"chapter,omitempty"`
	Keywords []string            `bson:"keywords,omitempty" json:"keywords,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
