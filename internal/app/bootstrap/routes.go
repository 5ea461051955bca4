// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/scriptlyhq/scriptly/internal/app/features/authapi"
	chaptersfeature "github.com/scriptlyhq/scriptly/internal/app/features/chapters"
	eventsfeature "github.com/scriptlyhq/scriptly/internal/app/features/events"
	healthfeature "github.com/scriptlyhq/scriptly/internal/app/features/health"
	tutorialsfeature "github.com/scriptlyhq/scriptly/internal/app/features/tutorials"
	usersfeature "github.com/scriptlyhq/scriptly/internal/app/features/users"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Scriptly is a JSON API: it creates the token manager, applies the bearer
// middleware globally, and mounts feature routers under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// The auth manager fetches fresh user data on each request, so role
	// changes and chapter reassignment take effect immediately.
	am := auth.NewManager(tokens, userstore.New(deps.MongoDatabase), logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(api chi.Router) {
		// Resolve the bearer token into a context user on every API
		// request. Public routes stay public; the gates decide what
		// absence means.
		api.Use(am.LoadBearerUser)

		authHandler := authfeature.NewHandler(deps.MongoDatabase, logger, tokens, appCfg.BcryptCost)
		api.Mount("/auth", authfeature.Routes(authHandler, am))

		usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger, appCfg.BcryptCost)
		api.Mount("/users", usersfeature.Routes(usersHandler, am))

		chaptersHandler := chaptersfeature.NewHandler(deps.MongoDatabase, deps.MongoClient, logger)
		api.Mount("/chapters", chaptersfeature.Routes(chaptersHandler, am))

		eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/events", eventsfeature.Routes(eventsHandler, am))

		tutorialsHandler := tutorialsfeature.NewHandler(deps.MongoDatabase, logger)
		api.Mount("/tutorials", tutorialsfeature.Routes(tutorialsHandler, am))
	})

	return r, nil
}
