// internal/app/features/shared/params.go
package shared

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PathID parses a chi URL parameter as an ObjectID, returning a 400 with
// the given message when the value is malformed.
func PathID(r *http.Request, name, badIDMessage string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation(badIDMessage)
	}
	return id, nil
}
