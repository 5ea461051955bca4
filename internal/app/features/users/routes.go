// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
)

func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(am.RequireSignedIn)

	r.With(am.RequireRole(models.RoleAdmin)).Get("/", h.ServeUserList)
	r.Get("/{id}", h.ServeUser)
	r.Put("/{id}/role", h.HandleUpdateUser)
	r.With(am.RequireRole(models.RoleAdmin, models.RoleChapterLead)).
		Post("/{id}/vouch", h.HandleVouch)
	r.Get("/{id}/registered-events", h.ServeRegisteredEvents)
	r.Put("/{id}/password", h.HandleChangePassword)

	return r
}
