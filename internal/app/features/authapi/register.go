// internal/app/features/authapi/register.go
package authapi

import (
	"context"
	"net/http"

	userstore "github.com/scriptlyhq/scriptly/internal/app/store/users"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

// HandleRegister creates a new account and returns a signed session token.
// POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	req.Name = normalize.Name(req.Name)
	req.Email = normalize.Email(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		httpjson.Error(w, apperr.Validation("Please enter all fields"), h.Log)
		return
	}
	if len(req.Password) < 6 {
		httpjson.Error(w, apperr.Validation("Password must be at least 6 characters long."), h.Log)
		return
	}

	role := models.RoleStudent
	if req.Role != "" {
		role = models.Role(normalize.Role(req.Role))
		if !role.Valid() {
			httpjson.Error(w, apperr.Validation("Invalid role provided."), h.Log)
			return
		}
		// Open registration never mints admins.
		if role == models.RoleAdmin {
			httpjson.Error(w, apperr.Forbidden("Cannot self-register as admin."), h.Log)
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.Create(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Error(w, apperr.Validation("User already exists"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	token, err := h.Tokens.Issue(&u)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", string(u.Role)))
	httpjson.Write(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    u,
		Token:   token,
	})
}
