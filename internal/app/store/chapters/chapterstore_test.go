package chapterstore_test

import (
	"testing"

	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"github.com/scriptlyhq/scriptly/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Chapter{
		Name:        "Springfield",
		Description: "The Springfield chapter",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Chapter{Name: "Springfield"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Duplicate detection is case-insensitive via name_ci.
	_, err := store.Create(ctx, models.Chapter{Name: "SPRINGFIELD"})
	if err != chapterstore.ErrDuplicateChapterName {
		t.Errorf("expected ErrDuplicateChapterName, got %v", err)
	}
}

func TestStore_List_SortedByFoldedName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"shelbyville", "Capital City", "Springfield"} {
		if _, err := store.Create(ctx, models.Chapter{Name: name}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	chapters, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(chapters))
	}
	want := []string{"Capital City", "shelbyville", "Springfield"}
	for i, name := range want {
		if chapters[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, chapters[i].Name, name)
		}
	}
}

func TestStore_UpdateInfo_KeepsNameWhenEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Chapter{Name: "Springfield", Description: "Old"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.UpdateInfo(ctx, created.ID, "", "New description"); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Springfield" {
		t.Errorf("expected name to be kept, got %q", got.Name)
	}
	if got.Description != "New description" {
		t.Errorf("expected description overwritten, got %q", got.Description)
	}
}

func TestStore_SetLead_AndClearLeadIf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Chapter{Name: "Springfield"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	leadID := primitive.NewObjectID()
	if err := store.SetLead(ctx, created.ID, &leadID); err != nil {
		t.Fatalf("SetLead failed: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.LedBy(leadID) {
		t.Error("expected chapter to be led by the assigned user")
	}

	// Clearing with a different user is a no-op.
	if err := store.ClearLeadIf(ctx, created.ID, primitive.NewObjectID()); err != nil {
		t.Fatalf("ClearLeadIf (other user) failed: %v", err)
	}
	got, _ = store.GetByID(ctx, created.ID)
	if !got.LedBy(leadID) {
		t.Error("expected lead to survive a guarded clear for another user")
	}

	if err := store.ClearLeadIf(ctx, created.ID, leadID); err != nil {
		t.Fatalf("ClearLeadIf failed: %v", err)
	}
	got, _ = store.GetByID(ctx, created.ID)
	if got.ChapterLead != nil {
		t.Error("expected lead to be cleared")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := chapterstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Chapter{Name: "Springfield"})
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

	deleted, err = store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted on repeat, got %d", deleted)
	}
}
