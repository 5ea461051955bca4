// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// TestPassword is the plaintext password every fixture user is created with.
const TestPassword = "test-password"

func (f *Fixtures) createUser(ctx context.Context, name, email string, role models.Role, chapter *primitive.ObjectID) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		Chapter:   chapter,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	return f.createUser(ctx, name, email, models.RoleAdmin, nil)
}

// CreateStudent creates a test student, optionally in a chapter.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string, chapter *primitive.ObjectID) models.User {
	return f.createUser(ctx, name, email, models.RoleStudent, chapter)
}

// CreateChapterLead creates a chapter-lead user and, when chapter is
// non-nil, wires the chapter's lead pointer back to the user.
func (f *Fixtures) CreateChapterLead(ctx context.Context, name, email string, chapter *primitive.ObjectID) models.User {
	f.t.Helper()
	u := f.createUser(ctx, name, email, models.RoleChapterLead, chapter)
	if chapter != nil {
		_, err := f.db.Collection("chapters").UpdateByID(ctx, *chapter,
			map[string]any{"$set": map[string]any{"chapter_lead": u.ID}})
		if err != nil {
			f.t.Fatalf("failed to set chapter lead: %v", err)
		}
	}
	return u
}

// CreateChapter creates a test chapter with the given name.
func (f *Fixtures) CreateChapter(ctx context.Context, name string) models.Chapter {
	f.t.Helper()

	now := time.Now().UTC()
	ch := models.Chapter{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test chapter",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("chapters").InsertOne(ctx, ch); err != nil {
		f.t.Fatalf("failed to create test chapter: %v", err)
	}
	return ch
}

// CreateCategory creates a test category. The name is stored lowercased,
// matching what the category store does.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateTutorial creates a test tutorial with the given author, category,
// and status.
func (f *Fixtures) CreateTutorial(ctx context.Context, title string, author, category primitive.ObjectID, status models.TutorialStatus) models.Tutorial {
	f.t.Helper()

	now := time.Now().UTC()
	tut := models.Tutorial{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   "Test tutorial content",
		Category:  category,
		Author:    author,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("tutorials").InsertOne(ctx, tut); err != nil {
		f.t.Fatalf("failed to create test tutorial: %v", err)
	}
	return tut
}

// CreateEvent creates a test event in the given chapter.
func (f *Fixtures) CreateEvent(ctx context.Context, name string, chapter, organizer primitive.ObjectID) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	ev := models.Event{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Test event",
		Date:        now.Add(72 * time.Hour),
		Location:    "Test Hall",
		Chapter:     chapter,
		Organizer:   organizer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return ev
}
