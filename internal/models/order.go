package models

import "time"

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CheckoutRequest is the body of POST /api/checkout
type CheckoutRequest struct {
	ShippingAddress Address `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
}

// Address is a shipping destination
type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// OrderItem is a priced snapshot of a purchased line. UnitPrice is the exact
// discounted price the order subtotal was computed from; Price is that value
// rounded for display, so Price*Quantity summed over items may differ from
// Subtotal by a rounding unit.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Size      string  `json:"size,omitempty"`
	Flavor    string  `json:"flavor,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Price     int64   `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order represents a placed order
type Order struct {
	ID                 string      `json:"id"`
	PlacedAt           time.Time   `json:"placedAt"`
	Status             OrderStatus `json:"status"`
	Items              []OrderItem `json:"items"`
	Subtotal           int64       `json:"subtotal"`
	Shipping           int64       `json:"shipping"`
	Total              int64       `json:"total"`
	ShippingAddress    Address     `json:"shippingAddress"`
	PaymentMethod      string      `json:"paymentMethod"`
	TrackingNumber     string      `json:"trackingNumber,omitempty"`
	DeliveryDate       *time.Time  `json:"deliveryDate,omitempty"`
	CancellationReason string      `json:"cancellationReason,omitempty"`
}

// OrderQuery narrows the order history view.
// An empty Status or "All" matches every order.
type OrderQuery struct {
	Search string
	Status string
}
