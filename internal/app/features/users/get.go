// internal/app/features/users/get.go
package users

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeUser returns a single user's public profile.
// GET /api/users/{id}
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid user ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("User not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	var chapter *models.Chapter
	if u.Chapter != nil {
		if ch, err := chapterstore.New(h.DB).GetByID(ctx, *u.Chapter); err == nil {
			chapter = &ch
		} else if err != mongo.ErrNoDocuments {
			httpjson.Error(w, err, h.Log)
			return
		}
	}

	httpjson.Write(w, http.StatusOK, shared.NewUserView(u, chapter))
}
