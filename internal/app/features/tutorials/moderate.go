// internal/app/features/tutorials/moderate.go
package tutorials

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	"github.com/scriptlyhq/scriptly/internal/app/policy/tutorialpolicy"
	tutorialstore "github.com/scriptlyhq/scriptly/internal/app/store/tutorials"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleApproveTutorial publishes a pending or rejected tutorial.
// PUT /api/tutorials/{id}/approve (admin)
func (h *Handler) HandleApproveTutorial(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "Tutorial approved successfully", tutorialpolicy.Approve)
}

// HandleRejectTutorial marks a tutorial as rejected.
// PUT /api/tutorials/{id}/reject (admin)
func (h *Handler) HandleRejectTutorial(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, "Tutorial rejected successfully", tutorialpolicy.Reject)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, okMessage string, transition func(*models.Tutorial) (models.TutorialStatus, error)) {
	id, err := shared.PathID(r, "id", "Invalid tutorial ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

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

	status, err := transition(&tut)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if err := store.SetStatus(ctx, id, status); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)
	h.Log.Info("tutorial moderated",
		zap.String("tutorial_id", id.Hex()),
		zap.String("status", string(status)),
		zap.String("actor_id", actor.ID.Hex()))

	tut.Status = status
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":  okMessage,
		"tutorial": tut,
	})
}
