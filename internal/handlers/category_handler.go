package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nutrikart/storefront/internal/repository"
	"github.com/nutrikart/storefront/internal/service"
)

// CategoryHandler handles category navigation
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// GetCategory handles GET /api/categories/{slug}
// Accepts the same filter parameters as the product listing.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	state := ParseFilterState(r.URL.Query())

	view, err := h.service.GetCategory(r.Context(), slug, state)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			h.logger.Info("category not found", "slug", slug)
			WriteError(w, http.StatusNotFound, "Category not found", h.logger)
			return
		}
		h.logger.Error("failed to get category", "slug", slug, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}
