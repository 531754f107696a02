package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nutrikart/storefront/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order history access
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, query models.OrderQuery) ([]models.Order, error)
}

// InMemoryOrderRepository keeps orders newest first
type InMemoryOrderRepository struct {
	orders []models.Order
	mu     sync.RWMutex
}

// NewInMemoryOrderRepository creates an order repository holding the given orders.
// Orders are expected newest first.
func NewInMemoryOrderRepository(seed []models.Order) *InMemoryOrderRepository {
	orders := make([]models.Order, len(seed))
	copy(orders, seed)
	return &InMemoryOrderRepository{orders: orders}
}

// Create prepends an order to the history
func (r *InMemoryOrderRepository) Create(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append([]models.Order{order}, r.orders...)
	return nil
}

// GetByID returns an order by its ID
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// List returns orders whose ID or any item name contains the search text
// (case-insensitive) and whose status matches the query.
func (r *InMemoryOrderRepository) List(ctx context.Context, query models.OrderQuery) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(query.Search))
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if matchesSearch(o, search) && matchesStatus(o, query.Status) {
			out = append(out, o)
		}
	}
	return out, nil
}

func matchesSearch(o models.Order, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(o.ID), search) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), search) {
			return true
		}
	}
	return false
}

func matchesStatus(o models.Order, status string) bool {
	return status == "" || status == "All" || string(o.Status) == status
}

// DemoOrders returns the order history shown to the demo account
func DemoOrders() []models.Order {
	address := models.Address{
		Name:    "Himank",
		Street:  "123 Main Street, Apartment 4B",
		City:    "New Delhi",
		State:   "Delhi",
		ZipCode: "110001",
		Country: "India",
	}
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	delivered := func(t time.Time) *time.Time { return &t }

	return []models.Order{
		{
			ID:       "ORD-5723",
			PlacedAt: day(2023, time.June, 12),
			Status:   models.OrderStatusDelivered,
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Quantum Whey Isolate", Size: "3 lbs", Flavor: "Chocolate", UnitPrice: 8499, Price: 8499, Quantity: 1},
			},
			Subtotal:        8499,
			Total:           8499,
			ShippingAddress: address,
			PaymentMethod:   "Credit Card",
			TrackingNumber:  "IND8371625493",
			DeliveryDate:    delivered(day(2023, time.June, 15)),
		},
		{
			ID:       "ORD-4289",
			PlacedAt: day(2023, time.May, 28),
			Status:   models.OrderStatusProcessing,
			Items: []models.OrderItem{
				{ProductID: 2, Name: "Nova Surge Pre-Workout", Size: "30 servings", Flavor: "Blue Raspberry", UnitPrice: 3999, Price: 3999, Quantity: 1},
				{ProductID: 3, Name: "Matrix Micronized Creatine", Size: "300g", Flavor: "Unflavored", UnitPrice: 2499, Price: 2499, Quantity: 1},
			},
			Subtotal:        6498,
			Shipping:        250,
			Total:           6748,
			ShippingAddress: address,
			PaymentMethod:   "PayPal",
		},
		{
			ID:       "ORD-3105",
			PlacedAt: day(2023, time.March, 15),
			Status:   models.OrderStatusDelivered,
			Items: []models.OrderItem{
				{ProductID: 5, Name: "Vortex BCAA Complex", Size: "30 servings", Flavor: "Watermelon", UnitPrice: 3499, Price: 3499, Quantity: 1},
			},
			Subtotal:        3499,
			Shipping:        250,
			Total:           3749,
			ShippingAddress: address,
			PaymentMethod:   "Credit Card",
			TrackingNumber:  "IND7265931452",
			DeliveryDate:    delivered(day(2023, time.March, 20)),
		},
		{
			ID:       "ORD-2871",
			PlacedAt: day(2023, time.February, 2),
			Status:   models.OrderStatusCancelled,
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Quantum Whey Isolate", Size: "5 lbs", Flavor: "Vanilla", UnitPrice: 11999, Price: 11999, Quantity: 1},
			},
			Subtotal:           11999,
			Total:              11999,
			ShippingAddress:    address,
			PaymentMethod:      "Credit Card",
			CancellationReason: "Out of stock",
		},
	}
}
