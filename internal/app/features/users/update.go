// internal/app/features/users/update.go
package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	"github.com/scriptlyhq/scriptly/internal/app/policy/userpolicy"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// updateUserRequest distinguishes "field absent" from "field set to null":
// chapterId uses RawMessage because an explicit null means "remove from
// chapter" while absence means "leave alone".
type updateUserRequest struct {
	Name      *string         `json:"name"`
	Role      *string         `json:"role"`
	ChapterID json.RawMessage `json:"chapterId"`
}

var jsonNull = []byte("null")

// HandleUpdateUser changes a user's name, role, and/or chapter, subject to
// the userpolicy field rules.
// PUT /api/users/{id}/role
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid user ID or chapter ID.")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	var req updateUserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if req.Name == nil && req.Role == nil && req.ChapterID == nil {
		httpjson.Error(w, apperr.Validation("Please provide at least one field to update."), h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	target, err := users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("User not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if err := userpolicy.CanUpdate(actor, &target); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	if req.Name != nil {
		name := normalize.Name(*req.Name)
		if name == "" {
			httpjson.Error(w, apperr.Validation("Name cannot be empty."), h.Log)
			return
		}
		if err := users.SetName(ctx, id, name); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
	}

	if req.Role != nil {
		newRole := models.Role(normalize.Role(*req.Role))
		if err := userpolicy.CanChangeRole(actor, &target, newRole); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
		if err := users.SetRole(ctx, id, newRole); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
	}

	if req.ChapterID != nil {
		if err := userpolicy.CanChangeChapter(actor, &target); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
		chapterID, clear, err := parseChapterField(req.ChapterID)
		if err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
		if clear {
			if err := users.SetChapter(ctx, id, nil); err != nil {
				httpjson.Error(w, err, h.Log)
				return
			}
		} else {
			if _, err := chapterstore.New(h.DB).GetByID(ctx, chapterID); err != nil {
				if err == mongo.ErrNoDocuments {
					httpjson.Error(w, apperr.NotFound("Chapter not found for assignment."), h.Log)
					return
				}
				httpjson.Error(w, err, h.Log)
				return
			}
			if err := users.SetChapter(ctx, id, &chapterID); err != nil {
				httpjson.Error(w, err, h.Log)
				return
			}
		}
	}

	updated, err := users.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    updated,
	})
}

// parseChapterField interprets the raw chapterId value: null and "" mean
// clear, anything else must be a valid ObjectID hex string.
func parseChapterField(raw json.RawMessage) (primitive.ObjectID, bool, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return primitive.NilObjectID, true, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return primitive.NilObjectID, false, apperr.Validation("Invalid user ID or chapter ID.")
	}
	if s == "" {
		return primitive.NilObjectID, true, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false, apperr.Validation("Invalid user ID or chapter ID.")
	}
	return id, false, nil
}
