// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// Scriptly uses it to guarantee an admin account exists: registration never
// mints admins, so without a seed admin a fresh deployment would have no way
// to approve tutorials or manage chapters.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}
	return ensureSeedAdmin(ctx, deps, appCfg, logger)
}

// ensureSeedAdmin creates the configured admin account, or promotes the
// existing account with that email to admin. An existing admin is left
// untouched; the configured password is only used on first creation.
func ensureSeedAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	store := userstore.New(deps.MongoDatabase)
	email := normalize.Email(appCfg.AdminEmail)

	existing, err := store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			logger.Info("seed admin already present", zap.String("email", email))
			return nil
		}
		if err := store.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return fmt.Errorf("promote seed admin: %w", err)
		}
		logger.Info("promoted existing user to seed admin",
			zap.String("email", email),
			zap.String("previous_role", string(existing.Role)))
		return nil
	case err != mongo.ErrNoDocuments:
		return fmt.Errorf("lookup seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.AdminPassword), appCfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash seed admin password: %w", err)
	}

	created, err := store.Create(ctx, models.User{
		Name:     normalize.Name(appCfg.AdminName),
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	})
	if err != nil {
		// A concurrent replica may have created it first.
		if err == userstore.ErrDuplicateEmail {
			logger.Info("seed admin created concurrently", zap.String("email", email))
			return nil
		}
		return fmt.Errorf("create seed admin: %w", err)
	}

	logger.Info("created seed admin",
		zap.String("email", email),
		zap.String("user_id", created.ID.Hex()))
	return nil
}
