// internal/app/features/shared/views.go

// Package shared holds response shapes used by more than one feature.
package shared

import (
	"time"

	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChapterRef is the embedded chapter summary returned inside user and
// event payloads, replacing the raw ObjectID reference.
type ChapterRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// UserView is the public shape of a user: no password hash, chapter
// resolved to a name.
type UserView struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       models.Role        `json:"role"`
	Chapter    *ChapterRef        `json:"chapter,omitempty"`
	VouchCount int                `json:"vouchCount"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// NewUserView builds a UserView. chapter may be nil when the user has no
// chapter or the caller chose not to resolve it.
func NewUserView(u models.User, chapter *models.Chapter) UserView {
	v := UserView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		VouchCount: u.VouchCount,
		CreatedAt:  u.CreatedAt,
	}
	if chapter != nil {
		v.Chapter = &ChapterRef{ID: chapter.ID, Name: chapter.Name}
	}
	return v
}

// UserRef is the embedded user summary returned where a payload
// references another user (chapter leads, organizers, attendees).
type UserRef struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// NewUserRef builds a UserRef from a full user document.
func NewUserRef(u *models.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UsersByID maps user IDs to documents for batch view assembly.
func UsersByID(us []models.User) map[primitive.ObjectID]*models.User {
	m := make(map[primitive.ObjectID]*models.User, len(us))
	for i := range us {
		m[us[i].ID] = &us[i]
	}
	return m
}

// ChapterNames maps chapter IDs to refs for batch view assembly.
func ChapterNames(chapters []models.Chapter) map[primitive.ObjectID]*models.Chapter {
	m := make(map[primitive.ObjectID]*models.Chapter, len(chapters))
	for i := range chapters {
		m[chapters[i].ID] = &chapters[i]
	}
	return m
}

// ResolveChapter looks up a user's chapter in a prefetched map.
func ResolveChapter(u models.User, byID map[primitive.ObjectID]*models.Chapter) *models.Chapter {
	if u.Chapter == nil {
		return nil
	}
	return byID[*u.Chapter]
}
