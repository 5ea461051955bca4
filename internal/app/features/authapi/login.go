// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"net/http"

	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a signed session token.
// The unknown-email and wrong-password paths share one message so the
// endpoint does not confirm which addresses have accounts.
// POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	req.Email = normalize.Email(req.Email)
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, apperr.Validation("Please enter all fields"), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.Validation("Invalid credentials"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		httpjson.Error(w, apperr.Validation("Invalid credentials"), h.Log)
		return
	}

	token, err := h.Tokens.Issue(&u)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	httpjson.Write(w, http.StatusOK, authResponse{
		Message: "Logged in successfully",
		User:    u,
		Token:   token,
	})
}
