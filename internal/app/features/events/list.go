// internal/app/features/events/list.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	eventstore "github.com/scriptlyhq/scriptly/internal/app/store/events"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// eventView is an event with its chapter and user references resolved.
// Attendees are only populated on the detail endpoint.
type eventView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Date        time.Time          `json:"date"`
	Location    string             `json:"location"`
	Chapter     *shared.ChapterRef `json:"chapter,omitempty"`
	Organizer   *shared.UserRef    `json:"organizer,omitempty"`
	Attendees   []shared.UserRef   `json:"attendees,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

func newEventView(ev models.Event, chapter *models.Chapter, organizer *models.User) eventView {
	v := eventView{
		ID:          ev.ID,
		Name:        ev.Name,
		Description: ev.Description,
		Date:        ev.Date,
		Location:    ev.Location,
		Organizer:   shared.NewUserRef(organizer),
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
	if chapter != nil {
		v.Chapter = &shared.ChapterRef{ID: chapter.ID, Name: chapter.Name}
	}
	return v
}

// ServeEventList returns all events with chapter and organizer resolved,
// optionally narrowed to one chapter with ?chapterId=.
// GET /api/events (public)
func (h *Handler) ServeEventList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := eventstore.New(h.DB)

	var (
		evs []models.Event
		err error
	)
	if q := normalize.QueryParam(r.URL.Query().Get("chapterId")); q != "" {
		chapterID, perr := primitive.ObjectIDFromHex(q)
		if perr != nil {
			httpjson.Error(w, apperr.Validation("Invalid chapter ID"), h.Log)
			return
		}
		evs, err = store.ListByChapter(ctx, chapterID)
	} else {
		evs, err = store.List(ctx)
	}
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	chapters, err := chapterstore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	chapterByID := shared.ChapterNames(chapters)

	organizerIDs := make([]primitive.ObjectID, 0, len(evs))
	for _, ev := range evs {
		organizerIDs = append(organizerIDs, ev.Organizer)
	}
	organizers, err := userstore.New(h.DB).ListByIDs(ctx, organizerIDs)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	userByID := shared.UsersByID(organizers)

	views := make([]eventView, 0, len(evs))
	for _, ev := range evs {
		views = append(views, newEventView(ev, chapterByID[ev.Chapter], userByID[ev.Organizer]))
	}
	httpjson.Write(w, http.StatusOK, views)
}

// ServeEvent returns a single event with its attendee roster resolved.
// GET /api/events/{id} (public)
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid event ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := eventstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Event not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	var chapter *models.Chapter
	if ch, cerr := chapterstore.New(h.DB).GetByID(ctx, ev.Chapter); cerr == nil {
		chapter = &ch
	} else if cerr != mongo.ErrNoDocuments {
		httpjson.Error(w, cerr, h.Log)
		return
	}

	us := userstore.New(h.DB)
	people, err := us.ListByIDs(ctx, append([]primitive.ObjectID{ev.Organizer}, ev.Attendees...))
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	userByID := shared.UsersByID(people)

	view := newEventView(ev, chapter, userByID[ev.Organizer])
	for _, attendeeID := range ev.Attendees {
		if ref := shared.NewUserRef(userByID[attendeeID]); ref != nil {
			view.Attendees = append(view.Attendees, *ref)
		}
	}
	httpjson.Write(w, http.StatusOK, view)
}
