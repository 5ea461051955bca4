// internal/app/features/events/register.go
package events

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	eventstore "github.com/scriptlyhq/scriptly/internal/app/store/events"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleRegister adds the caller to the event's attendee list.
// POST /api/events/{id}/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	h.changeAttendance(w, r, true)
}

// HandleDeregister removes the caller from the event's attendee list.
// POST /api/events/{id}/deregister
func (h *Handler) HandleDeregister(w http.ResponseWriter, r *http.Request) {
	h.changeAttendance(w, r, false)
}

func (h *Handler) changeAttendance(w http.ResponseWriter, r *http.Request, join bool) {
	id, err := shared.PathID(r, "id", "Invalid event ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := eventstore.New(h.DB)
	if join {
		err = store.AddAttendee(ctx, id, actor.ID)
	} else {
		err = store.RemoveAttendee(ctx, id, actor.ID)
	}
	if err != nil {
		switch err {
		case mongo.ErrNoDocuments:
			httpjson.Error(w, apperr.NotFound("Event not found"), h.Log)
		case eventstore.ErrAlreadyRegistered:
			httpjson.Error(w, apperr.Conflict("Already registered for this event"), h.Log)
		case eventstore.ErrNotRegistered:
			httpjson.Error(w, apperr.Validation("Not registered for this event"), h.Log)
		default:
			httpjson.Error(w, err, h.Log)
		}
		return
	}

	ev, err := store.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	msg := "Successfully registered for event"
	if !join {
		msg = "Successfully deregistered from event"
	}
	h.Log.Info("event attendance changed",
		zap.String("event_id", id.Hex()),
		zap.String("user_id", actor.ID.Hex()),
		zap.Bool("registered", join))
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message": msg,
		"event":   ev,
	})
}
