// internal/app/features/chapters/view.go
package chapters

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memberView is the trimmed member listing inside a chapter detail.
type memberView struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       string             `json:"role"`
	VouchCount int                `json:"vouchCount"`
}

// ServeChapter returns a chapter plus its member roster. Membership lives
// on the user documents, so the roster is a query, not an embedded list.
// GET /api/chapters/{id} (public)
func (h *Handler) ServeChapter(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid chapter ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	members, err := userstore.New(h.DB).ListByChapter(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, memberView{
			ID:         m.ID,
			Name:       m.Name,
			Email:      m.Email,
			Role:       string(m.Role),
			VouchCount: m.VouchCount,
		})
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"chapter": ch,
		"members": views,
	})
}
