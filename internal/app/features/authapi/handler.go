// internal/app/features/authapi/handler.go
package authapi

import (
	"github.com/scriptlyhq/scriptly/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for registration, login, and
// the profile endpoint.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Tokens     *auth.TokenManager
	BcryptCost int
}

func NewHandler(db *mongo.Database, logger *zap.Logger, tokens *auth.TokenManager, bcryptCost int) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Tokens:     tokens,
		BcryptCost: bcryptCost,
	}
}
