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

// OrderHandler handles checkout and order history requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// Checkout handles POST /api/checkout
// Places an order for the session's cart and empties the cart.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.CartIDFromContext(r.Context())

	var req models.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.Checkout(r.Context(), cartID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Cart is empty", h.log)
		case errors.Is(err, service.ErrInvalidAddress):
			WriteError(w, http.StatusBadRequest, "Shipping address is incomplete", h.log)
		case errors.Is(err, service.ErrInvalidPaymentMethod):
			WriteError(w, http.StatusBadRequest, "Payment method is not supported", h.log)
		case errors.Is(err, service.ErrMissingCartID):
			WriteError(w, http.StatusBadRequest, "Cart ID is required", h.log)
		case errors.Is(err, repository.ErrCartConflict):
			WriteError(w, http.StatusConflict, "Cart is being updated, please retry", h.log)
		default:
			h.log.Error("failed to place order", "cart_id", cartID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.log)
	h.log.Info("order placed successfully", "order_id", order.ID, "items_count", len(order.Items), "total", order.Total)
}

// ListOrders handles GET /api/orders
// q searches order IDs and item names; status narrows to one status.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := models.OrderQuery{Search: q.Get("q")}
	if status := q.Get("status"); models.OrderStatus(status).Valid() {
		query.Status = status
	}

	orders, err := h.orderService.ListOrders(r.Context(), query)
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}

// GetOrder handles GET /api/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}
		h.log.Error("failed to get order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
