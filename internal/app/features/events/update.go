// internal/app/features/events/update.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	"github.com/scriptlyhq/scriptly/internal/app/policy/eventpolicy"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	eventstore "github.com/scriptlyhq/scriptly/internal/app/store/events"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	ChapterID   *string    `json:"chapterId"`
}

// HandleUpdateEvent lets the organizer or an admin change event details.
// Absent fields keep their current values.
// PUT /api/events/{id}
func (h *Handler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid event ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	var req updateEventRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := eventstore.New(h.DB)
	ev, err := store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Event not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if err := eventpolicy.CanUpdate(actor, &ev); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	if req.Name != nil {
		if n := normalize.Name(*req.Name); n != "" {
			ev.Name = n
		}
	}
	if req.Description != nil && *req.Description != "" {
		ev.Description = *req.Description
	}
	if req.Date != nil && !req.Date.IsZero() {
		ev.Date = req.Date.UTC()
	}
	if req.Location != nil && *req.Location != "" {
		ev.Location = *req.Location
	}
	if req.ChapterID != nil && *req.ChapterID != "" {
		chapterID, perr := primitive.ObjectIDFromHex(*req.ChapterID)
		if perr != nil {
			httpjson.Error(w, apperr.Validation("Invalid chapter ID"), h.Log)
			return
		}
		if _, err := chapterstore.New(h.DB).GetByID(ctx, chapterID); err != nil {
			if err == mongo.ErrNoDocuments {
				httpjson.Error(w, apperr.NotFound("New chapter not found"), h.Log)
				return
			}
			httpjson.Error(w, err, h.Log)
			return
		}
		ev.Chapter = chapterID
	}

	if err := store.UpdateDetails(ctx, id, ev.Name, ev.Description, ev.Date, ev.Location, ev.Chapter); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	h.Log.Info("event updated", zap.String("event_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": "Event updated successfully",
		"event":   updated,
	})
}

// HandleDeleteEvent removes an event. Organizer or admin only.
// DELETE /api/events/{id}
func (h *Handler) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid event ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := eventstore.New(h.DB)
	ev, err := store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Event not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if err := eventpolicy.CanDelete(actor, &ev); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	if _, err := store.Delete(ctx, id); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	h.Log.Info("event deleted", zap.String("event_id", id.Hex()))
	httpjson.Message(w, http.StatusOK, "Event deleted successfully")
}
