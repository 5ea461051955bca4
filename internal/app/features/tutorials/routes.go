// internal/app/features/tutorials/routes.go
package tutorials

import (
	"github.com/go-chi/chi/v5"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
)

func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	// Categories sit under the tutorials prefix; their CUD is admin-only
	// while reads are public.
	r.Route("/categories", func(cr chi.Router) {
		cr.Get("/", h.ServeCategoryList)
		cr.Group(func(pr chi.Router) {
			pr.Use(am.RequireSignedIn, am.RequireRole(models.RoleAdmin))
			pr.Post("/", h.HandleCreateCategory)
			pr.Put("/{id}", h.HandleUpdateCategory)
			pr.Delete("/{id}", h.HandleDeleteCategory)
		})
	})

	// Listing and detail are public but status-filtered; the handlers
	// read the optional context user themselves.
	r.Get("/", h.ServeTutorialList)
	r.Get("/{id}", h.ServeTutorial)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)
		pr.Post("/", h.HandleCreateTutorial)
		pr.Put("/{id}", h.HandleUpdateTutorial)
		pr.Delete("/{id}", h.HandleDeleteTutorial)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn, am.RequireRole(models.RoleAdmin))
		pr.Put("/{id}/approve", h.HandleApproveTutorial)
		pr.Put("/{id}/reject", h.HandleRejectTutorial)
	})

	return r
}
