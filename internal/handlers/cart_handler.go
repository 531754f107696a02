package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nutrikart/storefront/internal/middleware"
	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/repository"
	"github.com/nutrikart/storefront/internal/service"
)

// CartHandler handles the shopper's cart. Routes must run behind
// middleware.CartSession.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.CartIDFromContext(r.Context())

	view, err := h.service.GetCart(r.Context(), cartID)
	if err != nil {
		h.cartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.CartIDFromContext(r.Context())

	var req models.AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid add item request", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	view, err := h.service.AddItem(r.Context(), cartID, req)
	if err != nil {
		h.cartError(w, cartID, err)
		return
	}

	h.logger.Info("cart item added", "cart_id", cartID, "product_id", req.ProductID)
	WriteJSON(w, http.StatusOK, view, h.logger)
}

// UpdateItem handles PATCH /api/cart/items/{lineId}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.CartIDFromContext(r.Context())
	lineID := chi.URLParam(r, "lineId")

	var req models.UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid update quantity request", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), cartID, lineID, req.Quantity)
	if err != nil {
		h.cartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}

// RemoveItem handles DELETE /api/cart/items/{lineId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.CartIDFromContext(r.Context())
	lineID := chi.URLParam(r, "lineId")

	view, err := h.service.RemoveItem(r.Context(), cartID, lineID)
	if err != nil {
		h.cartError(w, cartID, err)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.logger)
}

func (h *CartHandler) cartError(w http.ResponseWriter, cartID string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCartID):
		WriteError(w, http.StatusBadRequest, "Cart ID is required", h.logger)
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product", h.logger)
	case errors.Is(err, service.ErrInvalidSize):
		WriteError(w, http.StatusBadRequest, "Size is not offered for this product", h.logger)
	case errors.Is(err, service.ErrInvalidFlavor):
		WriteError(w, http.StatusBadRequest, "Flavor is not offered for this product", h.logger)
	case errors.Is(err, service.ErrLineNotFound):
		WriteError(w, http.StatusNotFound, "Cart item not found", h.logger)
	case errors.Is(err, repository.ErrCartConflict):
		WriteError(w, http.StatusConflict, "Cart is being updated, please retry", h.logger)
	default:
		h.logger.Error("cart operation failed", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
