package userpolicy

import (
	"net/http"
	"testing"

	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func user(role models.Role, chapter *primitive.ObjectID) *models.User {
	return &models.User{ID: primitive.NewObjectID(), Role: role, Chapter: chapter}
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	if status == 0 {
		if err != nil {
			t.Fatalf("expected allow, got %v", err)
		}
		return
	}
	ae, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected apperr with status %d, got %v", status, err)
	}
	if ae.Status != status {
		t.Fatalf("status = %d, want %d (%s)", ae.Status, status, ae.Message)
	}
}

func TestCanUpdate(t *testing.T) {
	admin := user(models.RoleAdmin, nil)
	alice := user(models.RoleStudent, nil)
	bob := user(models.RoleStudent, nil)

	wantStatus(t, CanUpdate(alice, alice), 0)
	wantStatus(t, CanUpdate(admin, bob), 0)
	wantStatus(t, CanUpdate(alice, bob), http.StatusForbidden)
}

func TestCanChangeRole(t *testing.T) {
	admin := user(models.RoleAdmin, nil)
	student := user(models.RoleStudent, nil)

	wantStatus(t, CanChangeRole(admin, student, models.RoleChapterLead), 0)
	wantStatus(t, CanChangeRole(student, student, models.RoleAdmin), http.StatusForbidden)
	wantStatus(t, CanChangeRole(admin, student, "superuser"), http.StatusBadRequest)

	// An admin keeping their own admin role is fine; demoting is not.
	wantStatus(t, CanChangeRole(admin, admin, models.RoleAdmin), 0)
	wantStatus(t, CanChangeRole(admin, admin, models.RoleStudent), http.StatusForbidden)
}

func TestCanChangeChapter(t *testing.T) {
	admin := user(models.RoleAdmin, nil)
	lead := user(models.RoleChapterLead, nil)
	student := user(models.RoleStudent, nil)

	wantStatus(t, CanChangeChapter(student, student), 0)
	wantStatus(t, CanChangeChapter(admin, lead), 0)
	wantStatus(t, CanChangeChapter(lead, lead), http.StatusForbidden)
	wantStatus(t, CanChangeChapter(student, admin), http.StatusForbidden)
}

func TestCanVouch(t *testing.T) {
	chA := primitive.NewObjectID()
	chB := primitive.NewObjectID()

	admin := user(models.RoleAdmin, nil)
	leadA := user(models.RoleChapterLead, &chA)
	leadNone := user(models.RoleChapterLead, nil)
	studentA := user(models.RoleStudent, &chA)
	studentB := user(models.RoleStudent, &chB)
	studentNone := user(models.RoleStudent, nil)

	tests := []struct {
		name    string
		voucher *models.User
		target  *models.User
		status  int
	}{
		{"admin vouches anyone", admin, studentB, 0},
		{"lead vouches own chapter member", leadA, studentA, 0},
		{"lead vouches other chapter", leadA, studentB, http.StatusForbidden},
		{"lead without chapter", leadNone, studentA, http.StatusForbidden},
		{"target without chapter", leadA, studentNone, http.StatusForbidden},
		{"student cannot vouch", studentA, studentB, http.StatusForbidden},
		{"self vouch", leadA, leadA, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantStatus(t, CanVouch(tt.voucher, tt.target), tt.status)
		})
	}
}

func TestCanViewRegisteredEvents(t *testing.T) {
	admin := user(models.RoleAdmin, nil)
	alice := user(models.RoleStudent, nil)
	bob := user(models.RoleStudent, nil)

	wantStatus(t, CanViewRegisteredEvents(alice, alice.ID), 0)
	wantStatus(t, CanViewRegisteredEvents(admin, alice.ID), 0)
	wantStatus(t, CanViewRegisteredEvents(bob, alice.ID), http.StatusForbidden)
}

func TestCanChangePassword(t *testing.T) {
	admin := user(models.RoleAdmin, nil)
	alice := user(models.RoleStudent, nil)

	wantStatus(t, CanChangePassword(alice, alice.ID), 0)
	// Not even admins change another user's password.
	wantStatus(t, CanChangePassword(admin, alice.ID), http.StatusForbidden)
}
