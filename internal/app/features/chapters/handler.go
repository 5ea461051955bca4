// internal/app/features/chapters/handler.go
package chapters

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for chapter management. It
// carries the Mongo client in addition to the database because lead
// assignment and chapter deletion run multi-document transactions.
type Handler struct {
	DB     *mongo.Database
	Client *mongo.Client
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Client: client, Log: logger}
}
