package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// mapFetcher serves users from memory so middleware tests need no database.
type mapFetcher map[primitive.ObjectID]*models.User

func (f mapFetcher) FetchByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newTestManager(t *testing.T, users ...*models.User) *Manager {
	t.Helper()
	tm, err := NewTokenManager("middleware-test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	f := mapFetcher{}
	for _, u := range users {
		f[u.ID] = u
	}
	return NewManager(tm, f, zap.NewNop())
}

func okHandler(t *testing.T, wantUser *models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if wantUser == nil {
			if ok {
				t.Error("expected no user in context")
			}
		} else {
			if !ok || u.ID != wantUser.ID {
				t.Error("expected user in context")
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadBearerUser_ValidToken(t *testing.T) {
	u := testUser()
	m := newTestManager(t, u)

	tok, err := m.tokens.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	m.LoadBearerUser(okHandler(t, u)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestLoadBearerUser_NoHeader(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	m.LoadBearerUser(okHandler(t, nil)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("public route should pass through, got %d", rec.Code)
	}
}

func TestRequireSignedIn_NoToken(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	m.RequireSignedIn(okHandler(t, nil)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no token") {
		t.Errorf("body should name the missing token: %s", rec.Body.String())
	}
}

func TestRequireSignedIn_BadToken(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()

	m.LoadBearerUser(m.RequireSignedIn(okHandler(t, nil))).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token failed") {
		t.Errorf("body should distinguish a failed token: %s", rec.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	student := testUser()
	m := newTestManager(t, student)

	gate := m.RequireRole(models.RoleAdmin)

	req := WithTestUser(httptest.NewRequest("GET", "/", nil), student)
	rec := httptest.NewRecorder()
	gate(okHandler(t, nil)).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "student") {
		t.Errorf("403 message should name the offending role: %s", rec.Body.String())
	}

	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	req = WithTestUser(httptest.NewRequest("GET", "/", nil), admin)
	rec = httptest.NewRecorder()
	gate(okHandler(t, admin)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin should pass, got %d", rec.Code)
	}
}

func TestRequireRole_DeletedUserToken(t *testing.T) {
	u := testUser()
	m := newTestManager(t) // fetcher has no users

	tok, err := m.tokens.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	m.LoadBearerUser(m.RequireSignedIn(okHandler(t, nil))).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a token whose user is gone", rec.Code)
	}
}
