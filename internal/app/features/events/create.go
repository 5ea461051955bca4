// internal/app/features/events/create.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/scriptlyhq/scriptly/internal/app/policy/eventpolicy"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	eventstore "github.com/scriptlyhq/scriptly/internal/app/store/events"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	ChapterID   string    `json:"chapterId"`
}

// HandleCreateEvent creates an event in a chapter. The caller becomes the
// organizer; chapter leads may only organize for the chapter they lead.
// POST /api/events (chapter-lead or admin)
func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	req.Name = normalize.Name(req.Name)
	if req.Name == "" || req.Description == "" || req.Date.IsZero() ||
		req.Location == "" || req.ChapterID == "" {
		httpjson.Error(w, apperr.Validation("Please enter all required event fields"), h.Log)
		return
	}
	chapterID, err := primitive.ObjectIDFromHex(req.ChapterID)
	if err != nil {
		httpjson.Error(w, apperr.Validation("Invalid chapter ID"), h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	chapter, err := chapterstore.New(h.DB).GetByID(ctx, chapterID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Chapter not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if err := eventpolicy.CanCreate(actor, &chapter); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ev, err := eventstore.New(h.DB).Create(ctx, models.Event{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date.UTC(),
		Location:    req.Location,
		Chapter:     chapter.ID,
		Organizer:   actor.ID,
	})
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	h.Log.Info("event created",
		zap.String("event_id", ev.ID.Hex()),
		zap.String("chapter_id", chapter.ID.Hex()),
		zap.String("organizer_id", actor.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message": "Event created successfully",
		"event":   ev,
	})
}
