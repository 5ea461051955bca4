// internal/app/features/users/vouch.go
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
	"go.uber.org/zap"
)

// HandleVouch records the caller's vouch for the target user. The push and
// the counter increment are one atomic store operation, so a double-submit
// surfaces as a conflict instead of a double count.
// POST /api/users/{id}/vouch
func (h *Handler) HandleVouch(w http.ResponseWriter, r *http.Request) {
	targetID, err := shared.PathID(r, "id", "Invalid user ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	voucher, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	target, err := users.GetByID(ctx, targetID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("User not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if err := userpolicy.CanVouch(voucher, &target); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	if err := users.AddVouch(ctx, targetID, voucher.ID); err != nil {
		switch err {
		case userstore.ErrAlreadyVouched:
			httpjson.Error(w, apperr.Conflict("You have already vouched for this user"), h.Log)
		case mongo.ErrNoDocuments:
			httpjson.Error(w, apperr.NotFound("User not found"), h.Log)
		default:
			httpjson.Error(w, err, h.Log)
		}
		return
	}

	updated, err := users.GetByID(ctx, targetID)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	h.Log.Info("vouch recorded",
		zap.String("voucher_id", voucher.ID.Hex()),
		zap.String("target_id", targetID.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "User vouched successfully",
		"user": map[string]any{
			"id":         updated.ID,
			"name":       updated.Name,
			"email":      updated.Email,
			"role":       updated.Role,
			"vouchCount": updated.VouchCount,
		},
	})
}
