package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nutrikart/storefront/internal/repository"
	"github.com/nutrikart/storefront/internal/service"
)

// maxRelatedLimit caps the limit query parameter of the related endpoint
const maxRelatedLimit = 12

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
// Filter parameters are read from the query string; see ParseFilterState.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	state := ParseFilterState(r.URL.Query())

	products, err := h.service.ListProducts(r.Context(), state)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/products/{slug}
// - 200: successful operation
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.service.GetProduct(r.Context(), slug)
	if err != nil {
		h.productError(w, slug, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// RelatedProducts handles GET /api/products/{slug}/related
// An optional limit query parameter (1-12) overrides the default of 4.
func (h *ProductHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	limit := service.DefaultRelatedLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRelatedLimit {
			WriteError(w, http.StatusBadRequest, "Invalid limit supplied", h.logger)
			return
		}
		limit = n
	}

	related, err := h.service.RelatedProducts(r.Context(), slug, limit)
	if err != nil {
		h.productError(w, slug, err)
		return
	}

	WriteJSON(w, http.StatusOK, related, h.logger)
}

// FilterOptions handles GET /api/filters
func (h *ProductHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.logger.Error("failed to build filter options", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, opts, h.logger)
}

func (h *ProductHandler) productError(w http.ResponseWriter, slug string, err error) {
	if errors.Is(err, repository.ErrProductNotFound) {
		h.logger.Info("product not found", "slug", slug)
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	h.logger.Error("failed to get product", "slug", slug, "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
}
