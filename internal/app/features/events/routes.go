// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
)

func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeEventList)
	r.Get("/{id}", h.ServeEvent)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)

		pr.With(am.RequireRole(models.RoleChapterLead, models.RoleAdmin)).
			Post("/", h.HandleCreateEvent)
		pr.With(am.RequireRole(models.RoleChapterLead, models.RoleAdmin)).
			Put("/{id}", h.HandleUpdateEvent)
		pr.With(am.RequireRole(models.RoleChapterLead, models.RoleAdmin)).
			Delete("/{id}", h.HandleDeleteEvent)

		pr.Post("/{id}/register", h.HandleRegister)
		pr.Post("/{id}/deregister", h.HandleDeregister)
	})

	return r
}
