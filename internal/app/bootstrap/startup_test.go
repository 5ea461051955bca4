package bootstrap

import (
	"testing"

	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"github.com/scriptlyhq/scriptly/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func seedConfig(email string) AppConfig {
	return AppConfig{
		AdminEmail:    email,
		AdminName:     "Site Admin",
		AdminPassword: "seed-password",
		BcryptCost:    bcrypt.MinCost,
	}
}

func TestEnsureSeedAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := ensureSeedAdmin(ctx, deps, seedConfig("admin@test.com"), testLogger()); err != nil {
		t.Fatalf("ensureSeedAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, user.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("seed-password")); err != nil {
		t.Error("expected seed password to verify against stored hash")
	}
}

func TestEnsureSeedAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	existing := fx.CreateStudent(ctx, "Existing User", "existing@test.com", nil)

	deps := DBDeps{MongoDatabase: db}

	if err := ensureSeedAdmin(ctx, deps, seedConfig("existing@test.com"), testLogger()); err != nil {
		t.Fatalf("ensureSeedAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find user: %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, user.Role)
	}
	// The existing password stays; the seed password is only for creation.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(testutil.TestPassword)); err != nil {
		t.Error("expected existing password to survive promotion")
	}
}

func TestEnsureSeedAdmin_AlreadyAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	admin := fx.CreateAdmin(ctx, "Site Admin", "admin@test.com")

	deps := DBDeps{MongoDatabase: db}

	if err := ensureSeedAdmin(ctx, deps, seedConfig("admin@test.com"), testLogger()); err != nil {
		t.Fatalf("ensureSeedAdmin failed: %v", err)
	}

	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": admin.ID}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected role %q, got %q", models.RoleAdmin, user.Role)
	}
}
