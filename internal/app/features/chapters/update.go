// internal/app/features/chapters/update.go
package chapters

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	"github.com/scriptlyhq/scriptly/internal/app/policy/chapterpolicy"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	"github.com/scriptlyhq/scriptly/internal/app/store/leadassign"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// updateChapterRequest distinguishes an absent chapterLeadId (leave the
// lead alone) from an explicit null (unassign the current lead).
type updateChapterRequest struct {
	Name          *string         `json:"name"`
	Description   *string         `json:"description"`
	ChapterLeadID json.RawMessage `json:"chapterLeadId"`
}

var jsonNull = []byte("null")

// HandleUpdateChapter changes a chapter's name, description, and/or lead.
// PUT /api/chapters/{id} (admin)
func (h *Handler) HandleUpdateChapter(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid chapter ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	var req updateChapterRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	chapters := chapterstore.New(h.DB)
	ch, err := chapters.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Chapter not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if req.Name != nil || req.Description != nil {
		name := ""
		if req.Name != nil {
			name = normalize.Name(*req.Name)
		}
		desc := ch.Description
		if req.Description != nil {
			desc = *req.Description
		}
		if err := chapters.UpdateInfo(ctx, id, name, desc); err != nil {
			if err == chapterstore.ErrDuplicateChapterName {
				httpjson.Error(w, apperr.Validation("Chapter with this name already exists"), h.Log)
				return
			}
			httpjson.Error(w, err, h.Log)
			return
		}
	}

	if req.ChapterLeadID != nil {
		if err := h.applyLeadChange(ctx, ch, req.ChapterLeadID); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
	}

	updated, err := chapters.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	h.Log.Info("chapter updated", zap.String("chapter_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Chapter updated successfully",
		"chapter": updated,
	})
}

// applyLeadChange interprets the raw chapterLeadId value and routes it
// through the leadassign store so both sides of the relationship move
// together.
func (h *Handler) applyLeadChange(ctx context.Context, ch models.Chapter, raw json.RawMessage) error {
	engine := leadassign.New(h.Client, h.DB)

	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return engine.UnassignLead(ctx, ch)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return apperr.Validation("Provided Chapter Lead ID is invalid.")
	}
	if s == "" {
		return engine.UnassignLead(ctx, ch)
	}

	leadID, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return apperr.Validation("Provided Chapter Lead ID is invalid.")
	}
	lead, err := userstore.New(h.DB).GetByID(ctx, leadID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.Validation("Provided Chapter Lead ID is invalid.")
		}
		return err
	}
	if err := chapterpolicy.CanBeLead(&lead); err != nil {
		return err
	}
	if ch.LedBy(lead.ID) && lead.InChapter(ch.ID) {
		return nil
	}
	return engine.AssignLead(ctx, ch, lead)
}
