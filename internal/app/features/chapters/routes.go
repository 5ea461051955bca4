// internal/app/features/chapters/routes.go
package chapters

import (
	"github.com/go-chi/chi/v5"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
)

func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeChapterList)
	r.Get("/{id}", h.ServeChapter)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn, am.RequireRole(models.RoleAdmin))
		pr.Post("/", h.HandleCreateChapter)
		pr.Put("/{id}", h.HandleUpdateChapter)
		pr.Delete("/{id}", h.HandleDeleteChapter)
	})

	return r
}
