// internal/app/features/tutorials/categories.go
package tutorials

import (
	"context"
	"fmt"
	"net/http"

	"github.com/scriptlyhq/scriptly/internal/app/features/shared"
	categorystore "github.com/scriptlyhq/scriptly/internal/app/store/categories"
	tutorialstore "github.com/scriptlyhq/scriptly/internal/app/store/tutorials"
	"github.com/scriptlyhq/scriptly/internal/app/system/apperr"
	"github.com/scriptlyhq/scriptly/internal/app/system/httpjson"
	"github.com/scriptlyhq/scriptly/internal/app/system/normalize"
	"github.com/scriptlyhq/scriptly/internal/app/system/timeouts"
	"github.com/scriptlyhq/scriptly/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreateCategory creates a tutorial category.
// POST /api/tutorials/categories (admin)
func (h *Handler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		httpjson.Error(w, apperr.Validation("Category name is required"), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cat, err := categorystore.New(h.DB).Create(ctx, models.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if err == categorystore.ErrDuplicateCategoryName {
			httpjson.Error(w, apperr.Validation("Category with this name already exists"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	h.Log.Info("category created", zap.String("category_id", cat.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, map[string]any{
		"message":  "Category created successfully",
		"category": cat,
	})
}

// ServeCategoryList returns all categories.
// GET /api/tutorials/categories (public)
func (h *Handler) ServeCategoryList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cats, err := categorystore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	httpjson.Write(w, http.StatusOK, cats)
}

// HandleUpdateCategory changes a category's name and/or description.
// PUT /api/tutorials/categories/{id} (admin)
func (h *Handler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid category ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	var req categoryRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := categorystore.New(h.DB)
	current, err := store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Category not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	desc := current.Description
	if req.Description != "" {
		desc = req.Description
	}
	if err := store.UpdateInfo(ctx, id, normalize.Name(req.Name), desc); err != nil {
		if err == categorystore.ErrDuplicateCategoryName {
			httpjson.Error(w, apperr.Validation("Category with this name already exists"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	updated, err := store.GetByID(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"message":  "Category updated successfully",
		"category": updated,
	})
}

// HandleDeleteCategory removes a category unless tutorials still
// reference it.
// DELETE /api/tutorials/categories/{id} (admin)
func (h *Handler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := shared.PathID(r, "id", "Invalid category ID")
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := categorystore.New(h.DB)
	cat, err := store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Error(w, apperr.NotFound("Category not found"), h.Log)
			return
		}
		httpjson.Error(w, err, h.Log)
		return
	}

	linked, err := tutorialstore.New(h.DB).CountByCategory(ctx, id)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if linked > 0 {
		httpjson.Error(w, apperr.Conflict(fmt.Sprintf(
			"Cannot delete category %q. It has %d tutorials linked to it.", cat.Name, linked)), h.Log)
		return
	}

	if _, err := store.Delete(ctx, id); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	h.Log.Info("category deleted", zap.String("category_id", id.Hex()))
	httpjson.Message(w, http.StatusOK, "Category deleted successfully")
}
