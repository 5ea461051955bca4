// internal/app/features/tutorials/list.go
package tutorials

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	"github.com/scriptlyhq/scriptly/internal/app/policy/tutorialpolicy"
	tutorialstore "github.com/scriptlyhq/scriptly/internal/app/store/tutorials"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/authz"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeTutorialList lists tutorials. Anonymous and non-admin callers only
// ever see approved tutorials; admins see every status unless they narrow
// with ?status=.
// GET /api/tutorials?status=&categoryId=&authorId=&chapterId=&search=
func (h *Handler) ServeTutorialList(w http.ResponseWriter, r *http.Request) {
	filter := tutorialstore.Filter{Status: models.StatusApproved}
	if authz.IsAdmin(r) {
		filter.Status = ""
		if status := normalize.Status(r.URL.Query().Get("status")); status != "" && status != "all" {
			s := models.TutorialStatus(status)
			if !s.Valid() {
				httpjson.Error(w, apperr.Validation("Invalid status provided."), h.Log)
				return
			}
			filter.Status = s
		}
	}

	for param, dst := range map[string]**primitive.ObjectID{
		"categoryId": &filter.Category,
		"authorId":   &filter.Author,
		"chapterId":  &filter.Chapter,
	} {
		raw := normalize.QueryParam(r.URL.Query().Get(param))
		if raw == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpjson.Error(w, apperr.Validation("Invalid "+param+" filter."), h.Log)
			return
		}
		*dst = &id
	}
	filter.Search = normalize.QueryParam(r.URL.Query().Get("search"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tuts, err := tutorialstore.New(h.DB).List(ctx, filter)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if tuts == nil {
		tuts = []models.Tutorial{}
	}
	httpjson.Write(w, http.StatusOK, tuts)
}

// ServeTutorial returns one tutorial. Pending and rejected tutorials are
// only served to their author and admins.
// GET /api/tutorials/{id}
func (h *Handler) ServeTutorial(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid tutorial ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tut, err := tutorialstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Tutorial not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	viewer, _ := auth.CurrentUser(r)
	if err := tutorialpolicy.CanView(viewer, &tut); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	httpjson.Write(w, http.StatusOK, tut)
}
