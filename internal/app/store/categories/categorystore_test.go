package categorystore_test

import (
	"testing"

	categorystore "github.com/scriptlyhq/scriptly/internal/app/store/categories"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"github.com/scriptlyhq/scriptly/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Category{
		Name:        "Web Development",
		Description: "Frontend and backend tutorials",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	// Names are stored folded so lookups and uniqueness ignore case.
	if created.Name != "web development" {
		t.Errorf("expected folded name, got %q", created.Name)
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Category{Name: "Basics"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Category{Name: "BASICS"})
	if err != categorystore.ErrDuplicateCategoryName {
		t.Errorf("expected ErrDuplicateCategoryName, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"databases", "algorithms", "web"} {
		if _, err := store.Create(ctx, models.Category{Name: name}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	cats, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(cats))
	}
	if cats[0].Name != "algorithms" {
		t.Errorf("expected list sorted by name, got %q first", cats[0].Name)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Category{Name: "basics"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}
}
