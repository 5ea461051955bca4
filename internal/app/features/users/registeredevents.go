// internal/app/features/users/registeredevents.go
package users

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	"github.com/scriptlyhq/scriptly/internal/app/policy/userpolicy"
	eventstore "github.com/scriptlyhq/scriptly/internal/app/store/events"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeRegisteredEvents lists the events a user is registered for.
// GET /api/users/{id}/registered-events
func (h *Handler) ServeRegisteredEvents(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid user ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	actor, _ := auth.CurrentUser(r)
	if err := userpolicy.CanViewRegisteredEvents(actor, id); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := userstore.New(h.DB).GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("User not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	events, err := eventstore.New(h.DB).ListByAttendee(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	httpjson.Write(w, http.StatusOK, events)
}
