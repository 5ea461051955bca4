// internal/app/features/users/handler.go
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for user administration,
// vouching, and password changes.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	BcryptCost int
}

func NewHandler(db *mongo.Database, logger *zap.Logger, bcryptCost int) *Handler {
	return &Handler{DB: db, Log: logger, BcryptCost: bcryptCost}
}
