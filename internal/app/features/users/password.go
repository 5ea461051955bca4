// internal/app/features/users/password.go
package users

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	"github.com/scriptlyhq/scriptly/internal/app/policy/userpolicy"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// HandleChangePassword verifies the old password and stores a new hash.
// Only the account owner may call it.
// PUT /api/users/{id}/password
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid user ID.")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)
	if err := userpolicy.CanChangePassword(actor, id); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	var req changePasswordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		httpjson.Error(w, apperr.Validation("Please provide both old and new passwords."), h.Log)
		return
	}
	if len(req.NewPassword) < 6 {
		httpjson.Error(w, apperr.Validation("New password must be at least 6 characters long."), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("User not found."), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.OldPassword)) != nil {
		httpjson.Error(w, apperr.Unauthorized("Old password is incorrect."), h.Log)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), h.BcryptCost)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if err := users.SetPassword(ctx, id, string(hash)); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	httpjson.Message(w, http.StatusOK,
		"Password updated successfully. Please log in with your new password.")
}
