// internal/app/features/authapi/profile.go
package authapi

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeProfile returns the authenticated user with their chapter resolved
// to a name. The middleware already fetched a fresh user document.
// GET /api/auth/profile
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	var chapter *models.Chapter
	if u.Chapter != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()
		ch, err := chapterstore.New(h.DB).GetByID(ctx, *u.Chapter)
		if err != nil && err != mongo.ErrNoDocuments {
			httpjson.Error(w, err, h.Log)
			return
		}
		if err == nil {
			chapter = &ch
		}
	}

	httpjson.Write(w, http.StatusOK, shared.NewUserView(*u, chapter))
}
