// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	chapterstore "github.com/scriptlyhq/scriptly/internal/app/store/chapters"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
)

// ServeUserList returns every user with chapter names resolved.
// GET /api/users (admin)
func (h *Handler) ServeUserList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	us, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	chapters, err := chapterstore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	byID := shared.ChapterNames(chapters)
	views := make([]shared.UserView, 0, len(us))
	for _, u := range us {
		views = append(views, shared.NewUserView(u, shared.ResolveChapter(u, byID)))
	}
	httpjson.Write(w, http.StatusOK, views)
}
