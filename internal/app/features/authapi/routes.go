// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
)

func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)
		pr.Get("/profile", h.ServeProfile)
	})

	return r
}
