// internal/app/features/chapters/create.go
package chapters

import (
	"context"
	"net/http"

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

type createChapterRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ChapterLeadID string `json:"chapterLeadId"`
}

// HandleCreateChapter creates a chapter and optionally assigns its first
// lead in the same request.
// POST /api/chapters (admin)
func (h *Handler) HandleCreateChapter(w http.ResponseWriter, r *http.Request) {
	var req createChapterRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		httpjson.Error(w, apperr.Validation("Chapter name is required"), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Validate the lead before creating the chapter so a bad lead ID does
	// not leave a leadless chapter behind.
	var lead *models.User
	if req.ChapterLeadID != "" {
		leadID, err := primitive.ObjectIDFromHex(req.ChapterLeadID)
		if err != nil {
			httpjson.Error(w, apperr.Validation("Provided Chapter Lead ID is invalid."), h.Log)
			return
		}
		u, err := userstore.New(h.DB).GetByID(ctx, leadID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				httpjson.Error(w, apperr.Validation("Provided Chapter Lead ID is invalid."), h.Log)
				return
			}
			httpjson.Error(w, err, h.Log)
			return
		}
		if err := chapterpolicy.CanBeLead(&u); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
		lead = &u
	}

	ch, err := chapterstore.New(h.DB).Create(ctx, models.Chapter{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if err == chapterstore.ErrDuplicateChapterName {
			httpjson.Error(w, apperr.Validation("Chapter with this name already exists"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if lead != nil {
		if err := leadassign.New(h.Client, h.DB).AssignLead(ctx, ch, *lead); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
		ch.ChapterLead = &lead.ID
	}

	h.Log.Info("chapter created",
		zap.String("chapter_id", ch.ID.Hex()),
		zap.String("name", ch.Name))
	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message": "Chapter created successfully",
		"chapter": ch,
	})
}
