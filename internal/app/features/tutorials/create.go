// internal/app/features/tutorials/create.go
package tutorials

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/policy/tutorialpolicy"
	categorystore "github.com/scriptlyhq/scriptly/internal/app/store/categories"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	tutorialstore "github.com/scriptlyhq/scriptly/internal/app/store/tutorials"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/htmlsanitize"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createTutorialRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Chapter  string   `json:"chapter"`
	Keywords []string `json:"keywords"`
}

// HandleCreateTutorial submits a tutorial. Admin-authored tutorials are
// approved immediately; everyone else's start in review.
// POST /api/tutorials
func (h *Handler) HandleCreateTutorial(w http.ResponseWriter, r *http.Request) {
	var req createTutorialRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	req.Title = normalize.Name(req.Title)
	if req.Title == "" || req.Content == "" || req.Category == "" {
		httpjson.Error(w, apperr.Validation("Title, content, and category are required"), h.Log)
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		httpjson.Error(w, apperr.Validation("Invalid category ID"), h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := categorystore.New(h.DB).GetByID(ctx, categoryID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.Validation("Invalid category ID"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	var chapterID *primitive.ObjectID
	if req.Chapter != "" {
		cid, perr := primitive.ObjectIDFromHex(req.Chapter)
		if perr != nil {
			httpjson.Error(w, apperr.Validation("Invalid chapter ID."), h.Log)
			return
		}
		if _, err := chapterstore.New(h.DB).GetByID(ctx, cid); err != nil {
			if err == mongo.ErrNoDocuments {
				httpjson.Error(w, apperr.Validation("Invalid chapter ID."), h.Log)
				return
			}
			httpjson.Error(w, err, h.Log)
			return
		}
		chapterID = &cid
	}

	tut, err := tutorialstore.New(h.DB).Create(ctx, models.Tutorial{
		Title:    req.Title,
		Content:  htmlsanitize.Sanitize(req.Content),
		Category: categoryID,
		Author:   actor.ID,
		Status:   tutorialpolicy.InitialStatus(actor),
		Chapter:  chapterID,
		Keywords: normalize.Keywords(req.Keywords),
	})
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	h.Log.Info("tutorial created",
		zap.String("tutorial_id", tut.ID.Hex()),
		zap.String("author_id", actor.ID.Hex()),
		zap.String("status", string(tut.Status)))
	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message":  "Tutorial created successfully",
		"tutorial": tut,
	})
}
