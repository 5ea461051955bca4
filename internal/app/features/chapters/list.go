// internal/app/features/chapters/list.go
package chapters

import (
	"context"
	"net/http"
	"time"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// chapterListItem is a chapter with its lead resolved to a user summary.
type chapterListItem struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ChapterLead *shared.UserRef    `json:"chapterLead,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ServeChapterList returns all chapters with lead names resolved.
// GET /api/chapters (public)
func (h *Handler) ServeChapterList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	chs, err := chapterstore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	var leadIDs []primitive.ObjectID
	for _, ch := range chs {
		if ch.ChapterLead != nil {
			leadIDs = append(leadIDs, *ch.ChapterLead)
		}
	}
	leads, err := userstore.New(h.DB).ListByIDs(ctx, leadIDs)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	byID := shared.UsersByID(leads)

	views := make([]chapterListItem, 0, len(chs))
	for _, ch := range chs {
		item := chapterListItem{
			ID:          ch.ID,
			Name:        ch.Name,
			Description: ch.Description,
			CreatedAt:   ch.CreatedAt,
			UpdatedAt:   ch.UpdatedAt,
		}
		if ch.ChapterLead != nil {
			item.ChapterLead = shared.NewUserRef(byID[*ch.ChapterLead])
		}
		views = append(views, item)
	}
	httpjson.Write(w, http.StatusOK, views)
}
