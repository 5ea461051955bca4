// internal/app/features/tutorials/update.go
package tutorials

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
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

type updateTutorialRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Category *string  `json:"category"`
	Chapter  *string  `json:"chapter"` // "" detaches the tutorial from its chapter
	Keywords []string `json:"keywords"`
	Status   *string  `json:"status"`
}

// HandleUpdateTutorial edits a tutorial. Fields absent from the body keep
// their current values. A non-admin author editing an approved or rejected
// tutorial sends it back through review; only admins may name a status.
// PUT /api/tutorials/{id}
func (h *Handler) HandleUpdateTutorial(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid tutorial ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	var req updateTutorialRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := tutorialstore.New(h.DB)
	tut, err := store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Tutorial not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if err := tutorialpolicy.CanUpdate(actor, &tut); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	requested := models.TutorialStatus("")
	if req.Status != nil {
		requested = models.TutorialStatus(normalize.Status(*req.Status))
	}
	status, err := tutorialpolicy.StatusAfterEdit(actor, &tut, requested)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	title := tut.Title
	if req.Title != nil {
		if title = normalize.Name(*req.Title); title == "" {
			httpjson.Error(w, apperr.Validation("Title cannot be empty."), h.Log)
			return
		}
	}
	content := tut.Content
	if req.Content != nil {
		if *req.Content == "" {
			httpjson.Error(w, apperr.Validation("Content cannot be empty."), h.Log)
			return
		}
		content = htmlsanitize.Sanitize(*req.Content)
	}

	category := tut.Category
	if req.Category != nil {
		cid, perr := primitive.ObjectIDFromHex(*req.Category)
		if perr != nil {
			httpjson.Error(w, apperr.Validation("Invalid category ID"), h.Log)
			return
		}
		if _, err := categorystore.New(h.DB).GetByID(ctx, cid); err != nil {
			if err == mongo.ErrNoDocuments {
				httpjson.Error(w, apperr.Validation("Invalid category ID"), h.Log)
				return
			}
			httpjson.Error(w, err, h.Log)
			return
		}
		category = cid
	}

	chapter := tut.Chapter
	if req.Chapter != nil {
		if *req.Chapter == "" {
			chapter = nil
		} else {
			cid, perr := primitive.ObjectIDFromHex(*req.Chapter)
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
			chapter = &cid
		}
	}

	keywords := tut.Keywords
	if req.Keywords != nil {
		keywords = normalize.Keywords(req.Keywords)
	}

	if err := store.UpdateContent(ctx, id, title, content, category, chapter, keywords, status); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Tutorial not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	if status != tut.Status {
		h.Log.Info("tutorial status changed on edit",
			zap.String("tutorial_id", id.Hex()),
			zap.String("from", string(tut.Status)),
			zap.String("to", string(status)))
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":  "Tutorial updated successfully",
		"tutorial": updated,
	})
}

// HandleDeleteTutorial removes a tutorial. Admin only.
// DELETE /api/tutorials/{id}
func (h *Handler) HandleDeleteTutorial(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid tutorial ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)
	if err := tutorialpolicy.CanDelete(actor); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := tutorialstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if deleted == 0 {
		httpjson.Error(w, apperr.NotFound("Tutorial not found"), h.Log)
		return
	}

	h.Log.Info("tutorial deleted",
		zap.String("tutorial_id", id.Hex()),
		zap.String("actor_id", actor.ID.Hex()))
	httpjson.Message(w, http.StatusOK, "Tutorial deleted successfully")
}
