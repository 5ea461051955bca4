// internal/app/features/chapters/delete.go
package chapters

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	"github.com/scriptlyhq/scriptly/internal/app/store/leadassign"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDeleteChapter removes a chapter, releases its members, and deletes
// its events in one transactional operation.
// DELETE /api/chapters/{id} (admin)
func (h *Handler) HandleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid chapter ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ch, err := chapterstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Chapter not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	usersCleared, eventsDeleted, err := leadassign.New(h.Client, h.DB).DeleteChapter(ctx, ch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Chapter not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	h.Log.Info("chapter deleted",
		zap.String("chapter_id", id.Hex()),
		zap.Int64("users_cleared", usersCleared),
		zap.Int64("events_deleted", eventsDeleted))
	httpjson.Message(w, http.StatusOK, "Chapter deleted successfully")
}
