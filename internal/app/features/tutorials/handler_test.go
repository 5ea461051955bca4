package tutorials_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scriptlyhq/scriptly/internal/app/features/tutorials"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"github.com/scriptlyhq/scriptly/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*tutorials.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return tutorials.NewHandler(db, zap.NewNop()), db
}

func TestHandleCreateTutorial_StudentStartsPending(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")

	req := testutil.JSONRequest(t, "POST", "/api/tutorials", map[string]any{
		"title":    "Getting Started",
		"content":  "<p>Hello</p><script>alert('xss')</script>",
		"category": category.ID.Hex(),
		"keywords": []string{" Intro ", "BEGINNER"},
	})
	req = auth.WithTestUser(req, &student)

	rec := httptest.NewRecorder()
	h.HandleCreateTutorial(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var tut models.Tutorial
	if err := db.Collection("tutorials").FindOne(ctx, bson.M{"title": "Getting Started"}).Decode(&tut); err != nil {
		t.Fatalf("find created tutorial: %v", err)
	}
	if tut.Status != models.StatusPending {
		t.Errorf("expected status pending, got %q", tut.Status)
	}
	if tut.Content != "<p>Hello</p>" {
		t.Errorf("expected content sanitized, got %q", tut.Content)
	}
	if len(tut.Keywords) != 2 || tut.Keywords[0] != "intro" || tut.Keywords[1] != "beginner" {
		t.Errorf("expected normalized keywords, got %v", tut.Keywords)
	}
}

func TestHandleCreateTutorial_AdminSkipsReview(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateAdmin(ctx, "Admin", "admin@test.com")
	category := fx.CreateCategory(ctx, "basics")

	req := testutil.JSONRequest(t, "POST", "/api/tutorials", map[string]any{
		"title":    "Admin Notes",
		"content":  "<p>Notes</p>",
		"category": category.ID.Hex(),
	})
	req = auth.WithTestUser(req, &admin)

	rec := httptest.NewRecorder()
	h.HandleCreateTutorial(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var tut models.Tutorial
	if err := db.Collection("tutorials").FindOne(ctx, bson.M{"title": "Admin Notes"}).Decode(&tut); err != nil {
		t.Fatalf("find created tutorial: %v", err)
	}
	if tut.Status != models.StatusApproved {
		t.Errorf("expected admin-authored tutorial approved, got %q", tut.Status)
	}
}

func TestHandleCreateTutorial_UnknownCategory(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fx.CreateStudent(ctx, "Author", "author@test.com", nil)

	req := testutil.JSONRequest(t, "POST", "/api/tutorials", map[string]any{
		"title":    "Getting Started",
		"content":  "<p>Hello</p>",
		"category": "64b000000000000000000000",
	})
	req = auth.WithTestUser(req, &student)

	rec := httptest.NewRecorder()
	h.HandleCreateTutorial(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Invalid category ID" {
		t.Errorf("message: got %q", resp.Message)
	}
}

func TestServeTutorialList_PublicSeesApprovedOnly(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	fx.CreateTutorial(ctx, "Approved One", author.ID, category.ID, models.StatusApproved)
	fx.CreateTutorial(ctx, "Pending One", author.ID, category.ID, models.StatusPending)

	req := httptest.NewRequest("GET", "/api/tutorials", nil)
	rec := httptest.NewRecorder()
	h.ServeTutorialList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []models.Tutorial
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 1 || got[0].Title != "Approved One" {
		t.Errorf("expected only the approved tutorial, got %v", got)
	}
}

func TestServeTutorialList_AdminStatusFilter(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateAdmin(ctx, "Admin", "admin@test.com")
	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	fx.CreateTutorial(ctx, "Approved One", author.ID, category.ID, models.StatusApproved)
	fx.CreateTutorial(ctx, "Pending One", author.ID, category.ID, models.StatusPending)
	fx.CreateTutorial(ctx, "Rejected One", author.ID, category.ID, models.StatusRejected)

	// No status param: admins see the whole set, review queues included.
	req := httptest.NewRequest("GET", "/api/tutorials", nil)
	req = auth.WithTestUser(req, &admin)
	rec := httptest.NewRecorder()
	h.ServeTutorialList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []models.Tutorial
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 3 {
		t.Errorf("expected all 3 tutorials for admin without a status filter, got %d", len(got))
	}

	req = httptest.NewRequest("GET", "/api/tutorials?status=pending", nil)
	req = auth.WithTestUser(req, &admin)
	rec = httptest.NewRecorder()
	h.ServeTutorialList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 1 || got[0].Title != "Pending One" {
		t.Errorf("expected only the pending tutorial, got %v", got)
	}

	// Non-admins cannot reach other statuses through the filter.
	req = httptest.NewRequest("GET", "/api/tutorials?status=pending", nil)
	req = auth.WithTestUser(req, &author)
	rec = httptest.NewRecorder()
	h.ServeTutorialList(rec, req)
	testutil.DecodeJSON(t, rec, &got)
	if len(got) != 1 || got[0].Title != "Approved One" {
		t.Errorf("expected status filter ignored for non-admin, got %v", got)
	}
}

func TestServeTutorial_PendingVisibility(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	stranger := fx.CreateStudent(ctx, "Stranger", "stranger@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	tut := fx.CreateTutorial(ctx, "Pending One", author.ID, category.ID, models.StatusPending)

	// Anonymous request.
	req := httptest.NewRequest("GET", "/api/tutorials/"+tut.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	rec := httptest.NewRecorder()
	h.ServeTutorial(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("anonymous: expected 403, got %d", rec.Code)
	}

	// Another student.
	req = httptest.NewRequest("GET", "/api/tutorials/"+tut.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &stranger)
	rec = httptest.NewRecorder()
	h.ServeTutorial(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger: expected 403, got %d", rec.Code)
	}

	// The author.
	req = httptest.NewRequest("GET", "/api/tutorials/"+tut.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &author)
	rec = httptest.NewRecorder()
	h.ServeTutorial(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("author: expected 200, got %d", rec.Code)
	}
}

func TestHandleApproveTutorial(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateAdmin(ctx, "Admin", "admin@test.com")
	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	tut := fx.CreateTutorial(ctx, "Pending One", author.ID, category.ID, models.StatusPending)

	req := testutil.JSONRequest(t, "PUT", "/api/tutorials/"+tut.ID.Hex()+"/approve", nil)
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &admin)

	rec := httptest.NewRecorder()
	h.HandleApproveTutorial(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Tutorial approved successfully" {
		t.Errorf("message: got %q", resp.Message)
	}

	var got models.Tutorial
	if err := db.Collection("tutorials").FindOne(ctx, bson.M{"_id": tut.ID}).Decode(&got); err != nil {
		t.Fatalf("find tutorial: %v", err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("expected status approved, got %q", got.Status)
	}
}

func TestHandleApproveTutorial_AlreadyApproved(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateAdmin(ctx, "Admin", "admin@test.com")
	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	tut := fx.CreateTutorial(ctx, "Approved One", author.ID, category.ID, models.StatusApproved)

	req := testutil.JSONRequest(t, "PUT", "/api/tutorials/"+tut.ID.Hex()+"/approve", nil)
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &admin)

	rec := httptest.NewRecorder()
	h.HandleApproveTutorial(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Tutorial is already approved." {
		t.Errorf("message: got %q", resp.Message)
	}
}

func TestHandleUpdateTutorial_AuthorEditReentersReview(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	tut := fx.CreateTutorial(ctx, "Approved One", author.ID, category.ID, models.StatusApproved)

	req := testutil.JSONRequest(t, "PUT", "/api/tutorials/"+tut.ID.Hex(), map[string]any{
		"content": "<p>Revised</p>",
	})
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &author)

	rec := httptest.NewRecorder()
	h.HandleUpdateTutorial(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var got models.Tutorial
	if err := db.Collection("tutorials").FindOne(ctx, bson.M{"_id": tut.ID}).Decode(&got); err != nil {
		t.Fatalf("find tutorial: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("expected edit to send tutorial back to review, got %q", got.Status)
	}
	if got.Content != "<p>Revised</p>" {
		t.Errorf("expected revised content, got %q", got.Content)
	}
	if got.Title != tut.Title {
		t.Errorf("expected untouched title, got %q", got.Title)
	}
}

func TestHandleUpdateTutorial_AuthorCannotSetStatus(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	tut := fx.CreateTutorial(ctx, "Pending One", author.ID, category.ID, models.StatusPending)

	req := testutil.JSONRequest(t, "PUT", "/api/tutorials/"+tut.ID.Hex(), map[string]any{
		"status": "approved",
	})
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &author)

	rec := httptest.NewRecorder()
	h.HandleUpdateTutorial(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Message != "Only Admins can approve or reject tutorials." {
		t.Errorf("message: got %q", resp.Message)
	}
}

func TestHandleDeleteTutorial_AdminOnly(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	admin := fx.CreateAdmin(ctx, "Admin", "admin@test.com")
	category := fx.CreateCategory(ctx, "basics")
	tut := fx.CreateTutorial(ctx, "Doomed", author.ID, category.ID, models.StatusApproved)

	req := testutil.JSONRequest(t, "DELETE", "/api/tutorials/"+tut.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &author)
	rec := httptest.NewRecorder()
	h.HandleDeleteTutorial(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("author delete: expected 403, got %d", rec.Code)
	}

	req = testutil.JSONRequest(t, "DELETE", "/api/tutorials/"+tut.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", tut.ID.Hex())
	req = auth.WithTestUser(req, &admin)
	rec = httptest.NewRecorder()
	h.HandleDeleteTutorial(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	if err := db.Collection("tutorials").FindOne(ctx, bson.M{"_id": tut.ID}).Err(); err != mongo.ErrNoDocuments {
		t.Errorf("expected tutorial gone, got %v", err)
	}
}

func TestHandleDeleteCategory_BlockedWhileLinked(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fx.CreateStudent(ctx, "Author", "author@test.com", nil)
	category := fx.CreateCategory(ctx, "basics")
	fx.CreateTutorial(ctx, "Linked", author.ID, category.ID, models.StatusApproved)

	req := testutil.JSONRequest(t, "DELETE", "/api/tutorials/categories/"+category.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", category.ID.Hex())

	rec := httptest.NewRecorder()
	h.HandleDeleteCategory(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	want := fmt.Sprintf("Cannot delete category %q. It has 1 tutorials linked to it.", category.Name)
	if resp.Message != want {
		t.Errorf("message: got %q, want %q", resp.Message, want)
	}
}
