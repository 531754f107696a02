package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/pricing"
	"github.com/nutrikart/storefront/internal/repository"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidAddress       = errors.New("shipping address is incomplete")
	ErrInvalidPaymentMethod = errors.New("payment method is not supported")
)

// PaymentMethods are the accepted payment methods. Payment itself is not
// processed; the method is recorded on the order.
var PaymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "UPI"}

// OrderService handles checkout and order history
type OrderService struct {
	orders repository.OrderRepository
	carts  *CartService
	now    func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository, carts *CartService) *OrderService {
	return &OrderService{
		orders: orders,
		carts:  carts,
		now:    time.Now,
	}
}

// Checkout turns the cart into a Processing order and empties the cart.
// The cart's lines are claimed before the order is stored, so concurrent
// checkouts of one cart place a single order. On any error the lines are
// put back.
func (s *OrderService) Checkout(ctx context.Context, cartID string, req models.CheckoutRequest) (*models.Order, error) {
	if err := validateAddress(req.ShippingAddress); err != nil {
		return nil, err
	}
	if !validPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	taken, err := s.carts.takeLines(ctx, cartID)
	if err != nil {
		return nil, err
	}

	order, err := s.place(ctx, taken, req)
	if err != nil {
		if restoreErr := s.carts.restoreLines(ctx, taken); restoreErr != nil {
			return nil, fmt.Errorf("%w (%v)", err, restoreErr)
		}
		return nil, err
	}
	return order, nil
}

// place prices the claimed lines and stores the order
func (s *OrderService) place(ctx context.Context, cart *models.Cart, req models.CheckoutRequest) (*models.Order, error) {
	items, err := s.carts.resolve(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	summary := s.carts.Summarize(items)
	orderItems := make([]models.OrderItem, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Image:     line.Product.Image,
			Size:      line.Size,
			Flavor:    line.Flavor,
			UnitPrice: line.UnitPrice,
			Price:     pricing.Round(line.UnitPrice),
			Quantity:  line.Quantity,
		})
	}

	order := models.Order{
		ID:              generateOrderID(),
		PlacedAt:        s.now().UTC(),
		Status:          models.OrderStatusProcessing,
		Items:           orderItems,
		Subtotal:        summary.Subtotal,
		Shipping:        summary.Shipping,
		Total:           summary.Total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the order history narrowed by query, newest first
func (s *OrderService) ListOrders(ctx context.Context, query models.OrderQuery) ([]models.Order, error) {
	return s.orders.List(ctx, query)
}

// GetOrder returns one order
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func validateAddress(a models.Address) error {
	for _, field := range []string{a.Name, a.Street, a.City, a.ZipCode, a.Country} {
		if strings.TrimSpace(field) == "" {
			return ErrInvalidAddress
		}
	}
	return nil
}

func validPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// generateOrderID derives a short order number from a UUID
func generateOrderID() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ORD-" + strings.ToUpper(id[:8])
}
